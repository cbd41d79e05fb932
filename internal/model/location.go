package model

// MaxLocationLength bounds each location field, in characters.
const MaxLocationLength = 150

// ProfileKind names the profile tables that carry location fields.
type ProfileKind string

const (
	ProfileStudent ProfileKind = "students"
	ProfileTeacher ProfileKind = "teachers"
)

func (k ProfileKind) Valid() bool {
	return k == ProfileStudent || k == ProfileTeacher
}

// Location is the district/area/village triple stored on student and teacher
// profiles. Every field may be blank.
type Location struct {
	Area     string `json:"area"`
	District string `json:"district"`
	Village  string `json:"village"`
}

// LocationLabels are the display labels used by the school UI.
var LocationLabels = map[string]string{
	"area":     "ناحیه",
	"district": "ولسوالی",
	"village":  "قریه",
}
