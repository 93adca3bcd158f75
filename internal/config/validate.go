package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string
	Warnings []string
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a copy with trimmed, de-duplicated lists and
// the problems found in it. Regions are kept as-is: two countries sharing a
// geo id only produce a warning.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	sn := &out.SalesNav
	sn.Keywords = trimList(sn.Keywords)
	sn.RecruiterTerms = trimList(sn.RecruiterTerms)

	jb := &out.Jobs
	jb.Roles = trimList(jb.Roles)
	jb.Countries = trimList(jb.Countries)
	jb.VisaPhrases = trimList(jb.VisaPhrases)

	// ---- salesnav ----
	if strings.TrimSpace(sn.Output) == "" {
		res.addErr("salesnav.output is required")
	}
	if strings.TrimSpace(sn.LoginURL) == "" {
		res.addErr("salesnav.login_url is required")
	}
	if strings.TrimSpace(sn.SearchURL) == "" {
		res.addErr("salesnav.search_url is required")
	}
	if len(sn.Regions) == 0 {
		res.addWarn("salesnav.regions is empty; the company search will do nothing.")
	}
	geoOwner := map[string]string{}
	for i, r := range sn.Regions {
		if strings.TrimSpace(r.Country) == "" || strings.TrimSpace(r.GeoID) == "" {
			res.addErr("salesnav.regions[%d] needs both country and geo_id", i)
			continue
		}
		if prev, ok := geoOwner[r.GeoID]; ok {
			res.addWarn("geo_id %s is shared by %q and %q", r.GeoID, prev, r.Country)
			continue
		}
		geoOwner[r.GeoID] = r.Country
	}
	if len(sn.RecruiterTerms) == 0 {
		res.addWarn("salesnav.recruiter_terms is empty; no recruiter will ever match.")
	}
	if sn.MaxScrolls < 0 {
		res.addErr("salesnav.max_scrolls must be >= 0")
	}
	if sn.MaxProfiles <= 0 {
		res.addErr("salesnav.max_profiles must be > 0")
	}
	if sn.Timing.LoginWait <= 0 {
		res.addErr("salesnav.timing.login_wait must be > 0")
	}
	checkPause := func(name string, p Pause) {
		if p.Min < 0 || p.Max < p.Min {
			res.addErr("%s must satisfy 0 <= min <= max", name)
		}
	}
	checkPause("salesnav.timing.scroll_pause", sn.Timing.ScrollPause)
	checkPause("salesnav.timing.company_pause", sn.Timing.CompanyPause)

	// ---- jobs ----
	if strings.TrimSpace(jb.Output) == "" {
		res.addErr("jobs.output is required")
	}
	if strings.TrimSpace(jb.UserAgent) == "" {
		res.addWarn("jobs.user_agent is empty; requests will go out with Go's default agent.")
	}
	if len(jb.VisaPhrases) == 0 {
		res.addWarn("jobs.visa_phrases is empty; no posting will ever match.")
	}
	if jb.MaxCards <= 0 {
		res.addErr("jobs.max_cards must be > 0")
	}
	if jb.Delay < 0 {
		res.addErr("jobs.delay must be >= 0")
	}
	if jb.DescriptionTimeout <= 0 {
		res.addErr("jobs.description_timeout must be > 0")
	}
	if jb.SearchTimeout < 0 {
		res.addErr("jobs.search_timeout must be >= 0")
	}
	if jb.RequestsPerSecond < 0 {
		res.addErr("jobs.requests_per_second must be >= 0")
	}
	checkBoards := func(name string, bs []Board) {
		for i, b := range bs {
			if strings.TrimSpace(b.BoardURL) == "" {
				res.addErr("%s[%d].board_url is required", name, i)
			}
			if strings.TrimSpace(b.Name) == "" {
				res.addWarn("%s[%d].name is empty", name, i)
			}
		}
	}
	checkBoards("jobs.greenhouse", jb.Greenhouse)
	checkBoards("jobs.lever", jb.Lever)

	return out, res
}
