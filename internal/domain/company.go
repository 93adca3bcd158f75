package domain

import "strings"

// Region maps a country to the search endpoint's opaque geo identifier.
type Region struct {
	Country string `yaml:"country"`
	GeoID   string `yaml:"geo_id"`
}

type CompanyRecord struct {
	Name string
	URL  string
}

// RecruiterMention is a display string "name (title)".
type RecruiterMention string

func NewRecruiterMention(name, title string) RecruiterMention {
	return RecruiterMention(name + " (" + title + ")")
}

// JoinMentions renders mentions for the Recruiters column.
func JoinMentions(ms []RecruiterMention) string {
	if len(ms) == 0 {
		return "Not Found"
	}
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = string(m)
	}
	return strings.Join(parts, "; ")
}

// CompanyRow is one line of the company output file.
type CompanyRow struct {
	Country    string
	Keyword    string
	Company    CompanyRecord
	Recruiters []RecruiterMention
}

func (r CompanyRow) Fields() [][2]string {
	return [][2]string{
		{"Country", r.Country},
		{"Keyword", r.Keyword},
		{"Company", r.Company.Name},
		{"Company URL", r.Company.URL},
		{"Recruiters", JoinMentions(r.Recruiters)},
	}
}
