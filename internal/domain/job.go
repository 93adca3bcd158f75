package domain

// Source names the site a JobRecord was found on.
type Source string

const (
	SourceLinkedIn   Source = "LinkedIn"
	SourceIndeed     Source = "Indeed"
	SourceGreenhouse Source = "Greenhouse"
	SourceLever      Source = "Lever"
)

// SearchTarget is one (location, keyword) pair of a search sweep.
type SearchTarget struct {
	Location string
	Keyword  string
}

// JobRecord is a posting whose description matched a visa phrase.
// Board sources (Greenhouse/Lever) carry Company; search sources carry Role and Country.
type JobRecord struct {
	Source  Source
	Role    string
	Company string
	Country string
	Link    string
}

// Fields returns the record as ordered column/value pairs. The column set
// depends on the source, so a mixed result set has irregular columns.
func (j JobRecord) Fields() [][2]string {
	switch j.Source {
	case SourceGreenhouse, SourceLever:
		return [][2]string{
			{"source", string(j.Source)},
			{"company", j.Company},
			{"job_link", j.Link},
		}
	default:
		return [][2]string{
			{"source", string(j.Source)},
			{"role", j.Role},
			{"country", j.Country},
			{"job_link", j.Link},
		}
	}
}
