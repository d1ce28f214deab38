package models

import "strings"

// Completeness is a scorecard of which parts of the profile are filled in.
// Location is the minimum bar for a profile to count as complete; the rest
// only affect the percentage.
type Completeness struct {
	HasBasicInfo bool
	HasHeadline  bool
	HasSummary   bool
	HasLocation  bool
	HasPhoto     bool
	HasContact   bool

	Filled     int
	Total      int
	Percentage float64
	IsComplete bool
}

// ProfileCompleteness scores the user's profile. Placeholder values that the
// backend seeds on registration (the "<name>'s Portfolio" headline and the
// "Welcome to ..." summary) do not count as filled in.
func ProfileCompleteness(u *User) Completeness {
	c := Completeness{Total: 6}
	if u == nil {
		return c
	}

	c.HasBasicInfo = u.FirstName != "" && u.LastName != ""
	c.HasHeadline = u.Headline != "" && u.Headline != u.FullName+"'s Portfolio"
	c.HasSummary = u.Summary != "" && !strings.HasPrefix(u.Summary, "Welcome to")
	c.HasLocation = u.City != "" && u.State != "" && u.Country != ""
	c.HasPhoto = u.ProfilePicture != "" || u.ProfilePictureURL != ""
	c.HasContact = u.Phone != "" || u.Email != ""

	for _, ok := range []bool{c.HasBasicInfo, c.HasHeadline, c.HasSummary, c.HasLocation, c.HasPhoto, c.HasContact} {
		if ok {
			c.Filled++
		}
	}
	c.Percentage = float64(c.Filled) / float64(c.Total) * 100
	c.IsComplete = c.HasLocation
	return c
}
