package services

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"SehatCare/models"
	"SehatCare/util"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog/log"
)

type SignedPrescription struct {
	FilePath  string `json:"filePath"`
	Signature string `json:"signature"`
}

func validatePrescription(data *models.PrescriptionData) error {
	if data == nil || strings.TrimSpace(data.PatientName) == "" || len(data.Medicines) == 0 {
		return util.Validation(util.MISSING_PRESCRIPTION_DATA)
	}
	return nil
}

func displayDate(value string) string {
	for _, layout := range appointmentDateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(value)); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return value
}

/*
* Header with clinic name and contact
* Patient block, then one row per medicine with optional instructions
* Signature line and footer on every page
 */
func RenderPrescriptionPDF(data *models.PrescriptionData) ([]byte, error) {
	if err := validatePrescription(data); err != nil {
		return nil, err
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-30)
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(55, 65, 81)
		pdf.CellFormat(0, 6, "Doctor's Signature: _________________", "", 1, "R", false, 0, "")
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(107, 114, 128)
		pdf.CellFormat(0, 4, "This is a digital prescription generated by SEHAT Healthcare System.", "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 4, "For any queries, please contact your healthcare provider.", "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 4, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 24)
	pdf.SetTextColor(30, 64, 175)
	pdf.CellFormat(120, 10, "SEHAT", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(55, 65, 81)
	pdf.CellFormat(0, 5, "Contact: +91 1234567890", "", 1, "R", false, 0, "")
	pdf.SetX(134)
	pdf.CellFormat(0, 5, "Email: care@sehat.com", "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 6, "Your Health, Our Priority", "", 1, "L", false, 0, "")
	pdf.SetDrawColor(37, 99, 235)
	pdf.Line(14, pdf.GetY()+2, 196, pdf.GetY()+2)
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(30, 64, 175)
	pdf.CellFormat(0, 10, "PRESCRIPTION", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.SetTextColor(55, 65, 81)
	pdf.CellFormat(0, 7, "PATIENT DETAILS", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(110, 6, "Patient Name: "+data.PatientName, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Date: "+displayDate(data.Date), "", 1, "R", false, 0, "")
	if data.DoctorName != "" {
		pdf.CellFormat(0, 6, "Doctor: "+data.DoctorName, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 7, "PRESCRIBED MEDICINES", "", 1, "L", false, 0, "")
	widths := []float64{70, 35, 42, 35}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(30, 64, 175)
	for i, h := range []string{"Medicine", "Dosage", "Frequency", "Duration"} {
		pdf.CellFormat(widths[i], 8, h, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(248, 250, 252)
	for i, m := range data.Medicines {
		pdf.SetTextColor(55, 65, 81)
		fill := i%2 == 0
		for j, v := range []string{m.Name, m.Dosage, m.Frequency, m.Duration} {
			pdf.CellFormat(widths[j], 8, v, "", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
		if m.Instructions != "" {
			pdf.SetFont("Arial", "I", 9)
			pdf.SetTextColor(107, 114, 128)
			pdf.MultiCell(0, 5, "Instructions: "+m.Instructions, "", "L", false)
			pdf.SetFont("Arial", "", 10)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

/*
* Render the PDF, sign its bytes
* Store it under uploads/prescriptions
 */
func CreatePrescription(data *models.PrescriptionData) (*SignedPrescription, error) {
	content, err := RenderPrescriptionPDF(data)
	if err != nil {
		return nil, err
	}
	key, err := currentSigningKey()
	if err != nil {
		return nil, err
	}
	signature, err := SignData(content, key)
	if err != nil {
		log.Error().Err(err).Msg("Error while signing prescription")
		return nil, err
	}
	stored, err := SaveUpload(util.PrescriptionsDir, "prescription-", &UploadedFile{
		Name:     "prescription.pdf",
		MimeType: "application/pdf",
		Ext:      ".pdf",
		Data:     content,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("file", stored.Path).Msg("prescription created")
	return &SignedPrescription{FilePath: stored.Path, Signature: signature}, nil
}

// prescriptionFile maps a public /uploads/prescriptions path to disk and
// refuses anything outside that directory.
func prescriptionFile(publicPath string) (string, error) {
	prefix := util.UploadsRoute + "/" + util.PrescriptionsDir + "/"
	if !strings.HasPrefix(publicPath, prefix) {
		return "", util.Validation(util.INVALID_FILE_PATH)
	}
	name := strings.TrimPrefix(publicPath, prefix)
	if name == "" || name != filepath.Base(name) || name == ".." {
		return "", util.Validation(util.INVALID_FILE_PATH)
	}
	return filepath.Join(UploadRoot, util.PrescriptionsDir, name), nil
}

func VerifyPrescription(filePath, signature string) error {
	if strings.TrimSpace(filePath) == "" || strings.TrimSpace(signature) == "" {
		return util.Validation(util.ALL_FIELDS_REQUIRED)
	}
	path, err := prescriptionFile(filePath)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return util.NotFound(util.FILE_NOT_FOUND)
		}
		return err
	}
	key, err := currentSigningKey()
	if err != nil {
		return err
	}
	if err := VerifySignature(content, signature, &key.PublicKey); err != nil {
		return util.Validation(util.INVALID_SIGNATURE)
	}
	return nil
}
