package models

// TherapistCategory drives slot quantization: Associate-level therapists book
// on the hour only, Graduate-level therapists at any offered granularity.
type TherapistCategory int

const (
	CategoryGraduate TherapistCategory = iota
	CategoryAssociate
)

func (c TherapistCategory) String() string {
	if c == CategoryAssociate {
		return "associate"
	}
	return "graduate"
}

// ParseCategory is the inverse of String, used when categories round-trip
// through the session store.
func ParseCategory(s string) TherapistCategory {
	if s == "associate" {
		return CategoryAssociate
	}
	return CategoryGraduate
}

// CategoryFromProgram maps the therapist-profile "program" attribute to a
// category. Decided once here, at the boundary where external therapist data
// enters the system.
func CategoryFromProgram(program string) TherapistCategory {
	if program == "Limited Permit" {
		return CategoryAssociate
	}
	return CategoryGraduate
}

// Therapist is the subset of the directory profile this service consumes.
type Therapist struct {
	ID            string   `bson:"id" json:"id"`
	InternName    string   `bson:"internName" json:"internName"`
	Email         string   `bson:"email" json:"email"`
	CalendarEmail string   `bson:"calendarEmail" json:"calendarEmail"`
	Program       string   `bson:"program" json:"program"`
	States        []string `bson:"states" json:"states"`
	Biography     string   `bson:"biography,omitempty" json:"biography,omitempty"`
	ImageLink     string   `bson:"imageLink,omitempty" json:"imageLink,omitempty"`
	Accepting     bool     `bson:"acceptingNewClients" json:"acceptingNewClients"`
}

// Category returns the quantization category for this therapist.
func (t Therapist) Category() TherapistCategory {
	return CategoryFromProgram(t.Program)
}
