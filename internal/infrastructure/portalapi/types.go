package portalapi

import (
	"sort"

	"github.com/example/reading-portal/internal/domain/reading"
	"github.com/example/reading-portal/internal/domain/user"
	"github.com/example/reading-portal/internal/logger"
)

// Department is a portal department as served by the API.
type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Event is a one-off activity with open signup and no slot rules.
type Event struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Date        string      `json:"date"`
	Description string      `json:"description"`
	Users       []eventUser `json:"users"`
}

type eventUser struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Seniority string `json:"seniority"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

type userJSON struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Seniority string `json:"seniority"`
}

func (u userJSON) toDomain() user.User {
	return user.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      user.Role(u.Role),
		Seniority: user.Seniority(u.Seniority),
	}
}

type reportJSON struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type readingJSON struct {
	ID         int64       `json:"id"`
	Blocked    bool        `json:"blocked"`
	Date       string      `json:"date"`
	User       userJSON    `json:"user"`
	Department Department  `json:"department"`
	Report     *reportJSON `json:"report"`
}

type dateGroup struct {
	Date     string        `json:"date"`
	Readings []readingJSON `json:"readings"`
}

type createReadingRequest struct {
	UserID       int64  `json:"userId"`
	Date         string `json:"date"`
	DepartmentID int64  `json:"departmentId"`
}

type reportRequest struct {
	ReadingID   int64  `json:"readingId,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// toSnapshots converts per-date wire groups into one snapshot per
// (department, date) tuple. When departmentID is non-zero (a per-department
// listing) every group belongs to it, including empty ones; otherwise (the
// "my readings" view) the tuple comes from each reading. Groups that fail to
// parse are skipped with a warning; a malformed payload degrades to less
// data, never a crash.
func toSnapshots(groups []dateGroup, departmentID int64) []reading.Snapshot {
	type key struct {
		dept int64
		date reading.Date
	}
	byTuple := make(map[key]*reading.Snapshot)
	for _, g := range groups {
		date, err := reading.ParseDate(g.Date)
		if err != nil {
			logger.L().Warn("skipping snapshot group with bad date", "date", g.Date, "err", err)
			continue
		}
		if departmentID != 0 {
			// An empty group still names a date the server considers open.
			k := key{dept: departmentID, date: date}
			if _, ok := byTuple[k]; !ok {
				byTuple[k] = &reading.Snapshot{DepartmentID: departmentID, Date: date}
			}
		}
		for _, rj := range g.Readings {
			dept := rj.Department.ID
			if departmentID != 0 {
				dept = departmentID
			}
			r := reading.Reading{
				ID:           rj.ID,
				Date:         date,
				DepartmentID: dept,
				User:         rj.User.toDomain(),
				Blocked:      rj.Blocked,
			}
			if rj.Report != nil {
				r.Report = &reading.Report{
					ID:          rj.Report.ID,
					Title:       rj.Report.Title,
					Description: rj.Report.Description,
				}
			}
			k := key{dept: dept, date: date}
			snap, ok := byTuple[k]
			if !ok {
				snap = &reading.Snapshot{DepartmentID: dept, Date: date}
				byTuple[k] = snap
			}
			snap.Readings = append(snap.Readings, r)
		}
	}

	out := make([]reading.Snapshot, 0, len(byTuple))
	for _, s := range byTuple {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].DepartmentID < out[j].DepartmentID
	})
	return out
}
