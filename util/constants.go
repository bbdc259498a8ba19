package util

// collections
const (
	UserCollection        = "users"
	HospitalCollection    = "hospitals"
	DoctorCollection      = "doctors"
	AppointmentCollection = "appointments"
	UnsafeAreaCollection  = "locations"
)

// cache keys
const (
	HospitalKey     = "hospital:"
	HospitalListKey = "hospital:all"
	DoctorKey       = "doctor:"
	DoctorListKey   = "doctor:all"
	DoctorByHospKey = "doctor:hospital:"
)

// context keys set by the JWT middleware
const (
	CtxUserID = "userId"
	CtxEmail  = "email"
	CtxRole   = "role"
)

const (
	UploadsRoute       = "/uploads"
	HealthCardsDir     = "health-cards"
	PrescriptionsDir   = "prescriptions"
	MaxDocumentSize    = 10 << 20
	MaxImageSize       = 5 << 20
	MeetBaseURL        = "https://meet.jit.si/"
	TokenCookie        = "token"
	DefaultSafetyLevel = 1
	UnsafeSafetyLevel  = 3
)

const (
	ALL_FIELDS_REQUIRED         = "All fields are required"
	USER_ALREADY_EXIST          = "User Already Exist"
	DOCTOR_ALREADY_EXIST        = "Doctor with this email already exists"
	USER_DOES_NOT_EXIST         = "User does not exist"
	INVALID_CREDENTIALS         = "Invalid Credentials"
	INVALID_ROLE                = "Invalid role"
	NOT_AUTHORIZED_NO_TOKEN     = "Not authorized, no token"
	INVALID_TOKEN               = "Not authorized, token failed"
	ROLE_NOT_AUTHORIZED         = "User role is not authorized to access this route"
	INVALID_ID                  = "Invalid id"
	DOCTOR_ID_REQUIRED          = "Doctor ID is required"
	APPOINTMENT_DATE_REQUIRED   = "Appointment date is required"
	INVALID_APPOINTMENT_DATE    = "Invalid appointment date"
	INVALID_STATUS              = "Invalid status"
	INVALID_STATUS_TRANSITION   = "Appointment status cannot change from %s to %s"
	APPOINTMENT_NOT_FOUND       = "Appointment not found"
	APPOINTMENT_NOT_OWNED       = "Not authorized to access this appointment"
	ONLY_DOCTOR_CAN_COMPLETE    = "Only doctors can complete an appointment"
	DOCTOR_NOT_FOUND            = "Doctor not found"
	HOSPITAL_NOT_FOUND          = "Hospital not found"
	NO_FILE_UPLOADED            = "No file uploaded"
	FILE_TOO_LARGE              = "File size too large. Maximum size is %dMB."
	INVALID_FILE_TYPE           = "Invalid file type. Only %s files are allowed."
	NO_PATIENT_EMAIL            = "No email found for the patient"
	SYMPTOMS_REQUIRED           = "Please provide symptoms."
	MESSAGE_REQUIRED            = "Please provide a message."
	EMPTY_AI_RESPONSE           = "No response from AI"
	LAT_LNG_REQUIRED            = "lat and lng are required"
	INVALID_COORDINATES         = "lat must be within [-90, 90] and lng within [-180, 180]"
	INVALID_SAFETY_LEVEL        = "safetyLevel must be one of 0, 1, 2, 3"
	ORIGIN_DESTINATION_REQUIRED = "Please enter both locations"
	NO_SAFE_ROUTE               = "No safe route found. All routes pass through unsafe areas"
	DIRECTIONS_UNAVAILABLE      = "Directions service is unavailable"
	AI_UNAVAILABLE              = "AI service is unavailable"
	AI_ANALYSIS_COMPLETE        = "AI Analysis Complete"
	APPOINTMENT_CANCELLED       = "Appointment cancelled successfully"
	PRESCRIPTION_UPLOADED       = "Prescription uploaded successfully"
	PRESCRIPTION_EMAIL_SUBJECT  = "Thanks For Using Services Of SEHAT"
	PRESCRIPTION_EMAIL_BODY     = "Please find your prescription attached."
	MISSING_PRESCRIPTION_DATA   = "Missing prescription data"
	INVALID_FILE_PATH           = "Invalid prescription file path"
	FILE_NOT_FOUND              = "File not found"
	INVALID_SIGNATURE           = "Signature does not match the prescription"
	VAULT_NOT_CONFIGURED        = "Document vault is not configured"
	RATE_LIMIT_EXCEEDED         = "rate limit exceeded"
)
