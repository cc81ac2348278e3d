package stats

import "time"

type Summary struct {
	Groups         int64     `json:"groups"`
	Families       int64     `json:"families"`
	Members        int64     `json:"members"`
	ActiveMembers  int64     `json:"activeMembers"`
	UpcomingEvents int64     `json:"upcomingEvents"`
	Integrity      Integrity `json:"integrity"`
	GeneratedAt    time.Time `json:"generatedAt"`
}

// Integrity counts references that the database does not enforce.
type Integrity struct {
	MembersWithoutFamily  int64 `json:"membersWithoutFamily"`
	MembersDanglingFamily int64 `json:"membersDanglingFamily"`
	FamiliesDanglingGroup int64 `json:"familiesDanglingGroup"`
	MembersDanglingGroup  int64 `json:"membersDanglingGroup"`
}
