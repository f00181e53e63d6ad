package handlers

import (
	"net/http"
	"strings"
	"time"

	"campushire/internal/app"
	"campushire/internal/domain/opportunity"
	"campushire/internal/domain/user"
	"campushire/internal/http/middleware"
	"campushire/internal/http/response"
)

type OpportunityHandler struct {
	opportunities *app.OpportunityService
}

func NewOpportunityHandler(opportunities *app.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{opportunities: opportunities}
}

type eligibilityRequest struct {
	MinCGPA                *float64 `json:"min_cgpa"`
	MinTenthPercent        *float64 `json:"min_tenth_percent"`
	MinTwelfthPercent      *float64 `json:"min_twelfth_percent"`
	RequiredGraduationYear *int     `json:"required_graduation_year"`
	AllowedBranches        []string `json:"allowed_branches"`
}

type opportunityRequest struct {
	Title            string             `json:"title" validate:"required"`
	Type             string             `json:"type"`
	Location         string             `json:"location"`
	Salary           string             `json:"salary"`
	Description      string             `json:"description"`
	Requirements     []string           `json:"requirements"`
	Responsibilities []string           `json:"responsibilities"`
	Benefits         []string           `json:"benefits"`
	Skills           []string           `json:"skills"`
	ExperienceLevel  string             `json:"experience_level"`
	Eligibility      eligibilityRequest `json:"eligibility"`
	Vacancies        int                `json:"vacancies"`
	Deadline         *time.Time         `json:"deadline"`
	Questions        []string           `json:"questions"`
}

func (req opportunityRequest) toDomain() opportunity.Opportunity {
	questions := make([]opportunity.Question, 0, len(req.Questions))
	for i, prompt := range req.Questions {
		prompt = strings.TrimSpace(prompt)
		if prompt == "" {
			continue
		}
		questions = append(questions, opportunity.Question{Prompt: prompt, Position: i})
	}
	return opportunity.Opportunity{
		Title:            strings.TrimSpace(req.Title),
		Type:             opportunity.Type(req.Type),
		Location:         strings.TrimSpace(req.Location),
		Salary:           strings.TrimSpace(req.Salary),
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Benefits:         req.Benefits,
		Skills:           req.Skills,
		ExperienceLevel:  opportunity.ExperienceLevel(req.ExperienceLevel),
		Eligibility: opportunity.Eligibility{
			MinCGPA:                req.Eligibility.MinCGPA,
			MinTenthPercent:        req.Eligibility.MinTenthPercent,
			MinTwelfthPercent:      req.Eligibility.MinTwelfthPercent,
			RequiredGraduationYear: req.Eligibility.RequiredGraduationYear,
			AllowedBranches:        req.Eligibility.AllowedBranches,
		},
		Vacancies: req.Vacancies,
		Deadline:  req.Deadline,
		Questions: questions,
	}
}

func (h *OpportunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req opportunityRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	o := req.toDomain()
	o.CompanyID = companyID
	created, err := h.opportunities.Create(r.Context(), o)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *OpportunityHandler) Update(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req opportunityRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	o := req.toDomain()
	o.ID = id
	o.CompanyID = companyID
	updated, err := h.opportunities.Update(r.Context(), o)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

type opportunityStatusRequest struct {
	Active *bool `json:"active" validate:"required"`
}

func (h *OpportunityHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req opportunityStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.opportunities.SetActive(r.Context(), companyID, id, *req.Active)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *OpportunityHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := opportunity.ListFilter{
		Search:     strings.TrimSpace(q.Get("search")),
		Type:       opportunity.Type(strings.TrimSpace(q.Get("type"))),
		Experience: opportunity.ExperienceLevel(strings.TrimSpace(q.Get("experience"))),
	}
	limit := queryInt(r, "limit", 0)
	offset := queryInt(r, "offset", 0)
	items, err := h.opportunities.ListActive(r.Context(), filter, limit, offset)
	if err != nil {
		response.Error(w, err)
		return
	}
	if items == nil {
		items = []opportunity.Opportunity{}
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *OpportunityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	viewerID, _ := middleware.UserIDFromContext(r.Context())
	role, _ := middleware.RoleFromContext(r.Context())
	item, err := h.opportunities.GetForViewer(r.Context(), id, viewerID, role == user.RoleStudent)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *OpportunityHandler) ListByCompany(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.opportunities.ListByCompany(r.Context(), companyID)
	if err != nil {
		response.Error(w, err)
		return
	}
	if items == nil {
		items = []opportunity.Opportunity{}
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *OpportunityHandler) GetByCompany(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.opportunities.GetByCompany(r.Context(), companyID, id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *OpportunityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.opportunities.Delete(r.Context(), companyID, id); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
