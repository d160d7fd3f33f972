package server

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleGetCV_EmptyStore(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/cv", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"experiences":[]`)
	assert.Contains(t, body, `"skills":[]`)
	assert.NotContains(t, body, "professionalSummary")
	assert.NotContains(t, body, "updatedAt")
}

func TestHandlePutCV_NormalizesAndStamps(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPut, "/cv", `{
		"personal": {"fullName": "Jane", "email": 5},
		"skills": ["Go", 3, null, "SQL"],
		"experiences": [{"id": "e1", "jobTitle": "Dev"}, {"jobTitle": "no id"}],
		"education": "not a list"
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	cv := decodeCV(t, w)
	assert.Equal(t, "Jane", cv.Personal.FullName)
	assert.Empty(t, cv.Personal.Email)
	assert.Equal(t, []string{"Go", "SQL"}, cv.Skills)
	require.Len(t, cv.Experiences, 1)
	assert.Equal(t, "e1", cv.Experiences[0].ID)
	assert.Empty(t, cv.Education)
	require.NotNil(t, cv.UpdatedAt)

	assert.Equal(t, cv, ts.stored(t, ""))
}

func TestHandlePutCV_InvalidJSON(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPut, "/cv", `{"personal":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w), "invalid JSON")
}

func TestHandlePutCV_DropsPendingAutosave(t *testing.T) {
	ts := newTestServer(t)

	ts.do(http.MethodPost, "/cv/autosave", map[string]any{"targetRole": "stale"})
	require.Equal(t, http.StatusOK, ts.do(http.MethodPut, "/cv", map[string]any{"targetRole": "fresh"}).Code)

	assert.False(t, ts.savers.Flush("guest"))
	assert.Equal(t, "fresh", ts.stored(t, "").TargetRole)
}

func TestHandleAutosave_DebouncedThenVisibleOnRead(t *testing.T) {
	ts := newTestServer(t)

	for _, role := range []string{"A", "AB", "ABC"} {
		w := ts.do(http.MethodPost, "/cv/autosave", map[string]any{"targetRole": role})
		require.Equal(t, http.StatusAccepted, w.Code)
		assert.JSONEq(t, `{"status":"scheduled"}`, w.Body.String())
	}

	_, found, _ := ts.store.Get(context.Background(), "cvData:v1:guest")
	assert.False(t, found, "nothing is written inside the debounce window")

	cv := decodeCV(t, ts.do(http.MethodGet, "/cv", nil))
	assert.Equal(t, "ABC", cv.TargetRole)
	assert.NotNil(t, cv.UpdatedAt)
}

func TestHandlePutPersonalAndTargetRole(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPut, "/cv/personal", map[string]any{"fullName": "Jane Doe", "github": "github.com/jane"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "github.com/jane", decodeCV(t, w).Personal.GitHub)

	w = ts.do(http.MethodPut, "/cv/target-role", map[string]any{"targetRole": "SRE"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "SRE", decodeCV(t, w).TargetRole)

	w = ts.do(http.MethodPut, "/cv/target-role", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w), "targetRole")

	stored := ts.stored(t, "")
	assert.Equal(t, "Jane Doe", stored.Personal.FullName)
	assert.Equal(t, "SRE", stored.TargetRole)
}

func TestHandlePutSummary_EmptyClears(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPut, "/cv/summary", map[string]any{"professionalSummary": "Hand written."})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hand written.", decodeCV(t, w).Summary())

	w = ts.do(http.MethodPut, "/cv/summary", map[string]any{"professionalSummary": ""})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"professionalSummary":""`)

	stored := ts.stored(t, "")
	require.NotNil(t, stored.ProfessionalSummary)
	assert.Empty(t, *stored.ProfessionalSummary)
}

func TestHandleSkills(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/cv/skills", map[string]any{"skill": "  Go  "})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, []string{"Go"}, decodeCV(t, w).Skills)

	w = ts.do(http.MethodPost, "/cv/skills", map[string]any{"skill": "React"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, []string{"React", "Go"}, decodeCV(t, w).Skills, "new skills are prepended")

	w = ts.do(http.MethodPost, "/cv/skills", map[string]any{"skill": "go"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, decodeError(t, w), "duplicate skill")

	w = ts.do(http.MethodPost, "/cv/skills", map[string]any{"skill": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Skill is required.", decodeError(t, w))

	w = ts.do(http.MethodPost, "/cv/skills", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodDelete, "/cv/skills/Go", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"React"}, decodeCV(t, w).Skills)

	w = ts.do(http.MethodDelete, "/cv/skills/Go", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleSkills_PathIsUnescaped(t *testing.T) {
	ts := newTestServer(t)
	ts.do(http.MethodPost, "/cv/skills", map[string]any{"skill": "C++ / CLI"})

	w := ts.do(http.MethodDelete, "/cv/skills/C++%20%2F%20CLI", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeCV(t, w).Skills)
}

func TestHandleExperiences(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/cv/experiences", map[string]any{"companyName": "Acme"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Company Name and Job Title are required.", decodeError(t, w))

	w = ts.do(http.MethodPost, "/cv/experiences", map[string]any{"companyName": "Acme", "jobTitle": "Dev", "id": "ignored"})
	require.Equal(t, http.StatusCreated, w.Code)
	first := decodeCV(t, w).Experiences[0]
	assert.True(t, strings.HasPrefix(first.ID, "exp_"), first.ID)

	w = ts.do(http.MethodPost, "/cv/experiences", map[string]any{"companyName": "Globex", "jobTitle": "Lead"})
	require.Equal(t, http.StatusCreated, w.Code)
	cv := decodeCV(t, w)
	require.Len(t, cv.Experiences, 2)
	assert.Equal(t, "Globex", cv.Experiences[0].CompanyName)

	w = ts.do(http.MethodPut, "/cv/experiences/"+first.ID, map[string]any{"companyName": "Acme", "jobTitle": "Senior Dev", "endDate": "Present"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeCV(t, w).Experiences[1]
	assert.Equal(t, first.ID, updated.ID)
	assert.Equal(t, "Senior Dev", updated.JobTitle)
	assert.Equal(t, "Present", updated.EndDate)

	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodPut, "/cv/experiences/exp_missing", map[string]any{"jobTitle": "x"}).Code)

	w = ts.do(http.MethodDelete, "/cv/experiences/"+first.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeCV(t, w).Experiences, 1)
	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodDelete, "/cv/experiences/"+first.ID, nil).Code)
}

func TestHandleEducation(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/cv/education", map[string]any{"degree": "BSc"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Institution and Degree are required.", decodeError(t, w))

	w = ts.do(http.MethodPost, "/cv/education", map[string]any{"institution": "TU Berlin", "degree": "BSc", "year": "2019"})
	require.Equal(t, http.StatusCreated, w.Code)
	entry := decodeCV(t, w).Education[0]
	assert.True(t, strings.HasPrefix(entry.ID, "edu_"), entry.ID)

	w = ts.do(http.MethodPut, "/cv/education/"+entry.ID, map[string]any{"institution": "TU Berlin", "degree": "MSc", "year": "2021"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MSc", decodeCV(t, w).Education[0].Degree)

	w = ts.do(http.MethodDelete, "/cv/education/"+entry.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeCV(t, w).Education)
}

func TestHandleProjects(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/cv/projects", map[string]any{"techStack": "Go"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Project Name is required.", decodeError(t, w))

	w = ts.do(http.MethodPost, "/cv/projects", map[string]any{"projectName": "Resume Bot", "techStack": "Go"})
	require.Equal(t, http.StatusCreated, w.Code)
	entry := decodeCV(t, w).Projects[0]
	assert.True(t, strings.HasPrefix(entry.ID, "proj_"), entry.ID)

	w = ts.do(http.MethodPut, "/cv/projects/"+entry.ID, map[string]any{"projectName": "Resume Bot", "techStack": "Go, HTMX"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Go, HTMX", decodeCV(t, w).Projects[0].TechStack)

	w = ts.do(http.MethodDelete, "/cv/projects/"+entry.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeCV(t, w).Projects)
}
