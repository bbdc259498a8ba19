package role

const (
	User   = "user"
	Doctor = "doctor"
)

var All = []string{User, Doctor}

func Valid(r string) bool {
	for _, v := range All {
		if v == r {
			return true
		}
	}
	return false
}
