package models

type Medicine struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions,omitempty"`
}

type PrescriptionData struct {
	PatientName string     `json:"patientName"`
	DoctorName  string     `json:"doctorName,omitempty"`
	Date        string     `json:"date"`
	Medicines   []Medicine `json:"medicines"`
}
