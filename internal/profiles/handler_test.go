package profiles

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestProfilesRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestCreateCandidateEndpoint(t *testing.T) {
	svc := newTestProfilesService()
	router := newTestProfilesRouter(svc)

	body := `{"skills":["Go","Redis"],"yearsOfExperience":4,"educationLevel":"graduate","githubUrl":"https://github.com/c1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/candidates", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}
	var candidate Candidate
	if err := json.Unmarshal(w.Body.Bytes(), &candidate); err != nil {
		t.Fatalf("decode candidate: %v", err)
	}
	if candidate.ID == "" {
		t.Fatal("expected generated candidate ID")
	}
	if candidate.Skills[0] != "go" {
		t.Fatalf("Skills = %v, want normalized", candidate.Skills)
	}
}

func TestCreateCandidateEndpointRejectsBadEducation(t *testing.T) {
	router := newTestProfilesRouter(newTestProfilesService())

	body := `{"educationLevel":"bootcamp"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/candidates", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetCandidateEndpointNotFound(t *testing.T) {
	router := newTestProfilesRouter(newTestProfilesService())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/candidates/ghost", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "not_found") {
		t.Fatalf("body = %s, want not_found envelope", w.Body.String())
	}
}

func TestCreateAndGetJobEndpoint(t *testing.T) {
	router := newTestProfilesRouter(newTestProfilesService())

	body := `{"requiredSkills":["Go"],"minExperience":2,"roleType":"contract","budget":5000}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}
	var job Job
	if err := json.Unmarshal(w.Body.Bytes(), &job); err != nil {
		t.Fatalf("decode job: %v", err)
	}
	if job.RoleType != RoleContract {
		t.Fatalf("RoleType = %s, want contract", job.RoleType)
	}

	get := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/"+job.ID, nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, get)
	if w2.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", w2.Code)
	}
}
