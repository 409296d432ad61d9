package portalapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/reading-portal/internal/domain/reading"
	"github.com/example/reading-portal/internal/domain/user"
	"github.com/example/reading-portal/internal/internaltypes"
)

func newTestClient(t *testing.T, h http.HandlerFunc, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, func() string { return token })
}

func TestLogin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Write([]byte(`{"access_token":"tok-123"}`))
	}, "")

	tok, err := c.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", tok)
}

func TestLoginBadCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid credentials"}`))
	}, "")

	_, err := c.Login(context.Background(), "a@b.c", "wrong")
	require.Error(t, err)
	assert.True(t, internaltypes.IsUnauthorized(err))
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestProfile(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
			w.Write([]byte(`{"id":9,"email":"a@b.c","name":"Ada","role":"user","seniority":"senior"}`))
		}, "tok-123")

		u, err := c.Profile(context.Background())
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, int64(9), u.ID)
		assert.Equal(t, user.SenioritySenior, u.Seniority)
	})

	t.Run("unauthorized means logged out, not an error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusUnauthorized)
		}, "")

		u, err := c.Profile(context.Background())
		require.NoError(t, err)
		assert.Nil(t, u)
	})
}

func TestReadingsForDepartment(t *testing.T) {
	payload := `[
		{"date":"2026-09-09","readings":[
			{"id":1,"blocked":false,"date":"2026-09-09",
			 "user":{"id":9,"name":"Ada","email":"a@b.c","role":"user","seniority":"junior"},
			 "department":{"id":5,"name":"Cardiology"},
			 "report":null}
		]},
		{"date":"2026-09-10","readings":[]}
	]`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/readings/list", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("departmentId"))
		assert.Equal(t, "active", r.URL.Query().Get("status"))
		w.Write([]byte(payload))
	}, "tok")

	snaps, err := c.ReadingsForDepartment(context.Background(), 5, "")
	require.NoError(t, err)
	require.Len(t, snaps, 2)

	assert.Equal(t, reading.Date{Year: 2026, Month: time.September, Day: 9}, snaps[0].Date)
	assert.Equal(t, int64(5), snaps[0].DepartmentID)
	require.Len(t, snaps[0].Readings, 1)
	assert.Equal(t, user.SeniorityJunior, snaps[0].Readings[0].User.Seniority)

	// The empty group survives as an open snapshot for its date.
	assert.Equal(t, reading.Date{Year: 2026, Month: time.September, Day: 10}, snaps[1].Date)
	assert.Empty(t, snaps[1].Readings)
}

func TestReadingsForDepartmentGarbagePayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totally":"unexpected"}`))
	}, "tok")

	snaps, err := c.ReadingsForDepartment(context.Background(), 5, "")
	require.NoError(t, err)
	assert.Nil(t, snaps)
}

func TestReadingsForDepartmentServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	}, "tok")

	_, err := c.ReadingsForDepartment(context.Background(), 5, "")
	require.Error(t, err)
	var apiErr *internaltypes.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "boom", apiErr.Message)
}

func TestReadingsForUserGroupsByDepartment(t *testing.T) {
	payload := `[
		{"date":"2026-09-09","readings":[
			{"id":1,"date":"2026-09-09",
			 "user":{"id":9,"role":"user","seniority":"senior"},
			 "department":{"id":5,"name":"Cardiology"},
			 "report":{"id":3,"title":"rounds","description":"notes"}},
			{"id":2,"date":"2026-09-09",
			 "user":{"id":9,"role":"user","seniority":"senior"},
			 "department":{"id":6,"name":"Oncology"}}
		]}
	]`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/readings/user", r.URL.Path)
		assert.Equal(t, "2026-09-09", r.URL.Query().Get("from"))
		assert.Equal(t, "2026-09-16", r.URL.Query().Get("to"))
		w.Write([]byte(payload))
	}, "tok")

	from := reading.Date{Year: 2026, Month: time.September, Day: 9}
	snaps, err := c.ReadingsForUser(context.Background(), from, from.AddDays(7))
	require.NoError(t, err)

	// One snapshot per department even on the same date.
	require.Len(t, snaps, 2)
	assert.Equal(t, int64(5), snaps[0].DepartmentID)
	assert.Equal(t, int64(6), snaps[1].DepartmentID)
	require.True(t, snaps[0].Readings[0].HasReport())
	assert.Equal(t, "rounds", snaps[0].Readings[0].Report.Title)
	assert.False(t, snaps[1].Readings[0].HasReport())
}

func TestCreateReadingConflict(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/readings", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"slot already full"}`))
	}, "tok")

	err := c.CreateReading(context.Background(), 9, reading.Date{Year: 2026, Month: time.September, Day: 9}, 5)
	require.Error(t, err)
	assert.True(t, internaltypes.IsConflict(err))
	assert.Contains(t, err.Error(), "slot already full")
}

func TestCreateReadingBody(t *testing.T) {
	var got createReadingRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, jsonDecode(r, &got))
		w.WriteHeader(http.StatusCreated)
	}, "tok")

	err := c.CreateReading(context.Background(), 9, reading.Date{Year: 2026, Month: time.September, Day: 9}, 5)
	require.NoError(t, err)
	assert.Equal(t, createReadingRequest{UserID: 9, Date: "2026-09-09", DepartmentID: 5}, got)
}

func TestDeleteReading(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/readings/42", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}, "tok")

	require.NoError(t, c.DeleteReading(context.Background(), 42))
}

func TestDeleteReadingNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"no such reading"}`))
	}, "tok")

	err := c.DeleteReading(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, internaltypes.ErrNotFound)
	assert.Contains(t, err.Error(), "no such reading")
}

func TestReports(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		var got reportRequest
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/reports", r.URL.Path)
			require.NoError(t, jsonDecode(r, &got))
			w.WriteHeader(http.StatusCreated)
		}, "tok")

		require.NoError(t, c.CreateReport(context.Background(), 42, "rounds", "notes"))
		assert.Equal(t, reportRequest{ReadingID: 42, Title: "rounds", Description: "notes"}, got)
	})

	t.Run("update", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "/reports/7", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}, "tok")

		require.NoError(t, c.UpdateReport(context.Background(), 7, "rounds", "more notes"))
	})
}

func TestEvents(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/events":
			w.Write([]byte(`[{"id":1,"title":"journal club","date":"2026-09-12","users":[]}]`))
		case "/events/signUp":
			assert.Equal(t, "1", r.URL.Query().Get("id"))
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}, "tok")

	evs, err := c.Events(context.Background())
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, "journal club", evs[0].Title)

	require.NoError(t, c.SignUpForEvent(context.Background(), 1))
}

func jsonDecode(r *http.Request, out any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(out)
}
