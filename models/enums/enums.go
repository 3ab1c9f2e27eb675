package enums

// Gender of an agent or client
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

// Country is where a client lives or travels from
type Country string

const (
	CountryNG Country = "NG"
	CountryUK Country = "UK"
	CountryUS Country = "US"
	CountryCA Country = "CA"
)

func (c Country) IsValid() bool {
	switch c {
	case CountryNG, CountryUK, CountryUS, CountryCA:
		return true
	default:
		return false
	}
}

// GetAllCountries returns every supported country
func GetAllCountries() []Country {
	return []Country{CountryNG, CountryUK, CountryUS, CountryCA}
}
