package handler

import (
	"errors"

	"placement-prep/internal/delivery/http/middleware"
	"placement-prep/internal/domain/company"
	"placement-prep/internal/domain/problem"
	"placement-prep/internal/pkg/response"
	"placement-prep/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const msgProblemNotFound = "Problem not found"

// CatalogHandler serves practice problems and company guides.
type CatalogHandler struct {
	problems  usecase.ProblemUsecase
	companies usecase.CompanyUsecase
}

type problemRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Difficulty  string             `json:"difficulty"`
	TestCases   []problem.TestCase `json:"test_cases"`
}

type companyRequest struct {
	Name              string             `json:"name"`
	Description       string             `json:"description"`
	LogoURL           string             `json:"logo_url"`
	Rounds            []string           `json:"rounds"`
	Topics            []company.Topic    `json:"topics"`
	PreviousQuestions []company.Question `json:"previous_questions"`
}

func NewCatalogHandler(problems usecase.ProblemUsecase, companies usecase.CompanyUsecase) *CatalogHandler {
	return &CatalogHandler{problems: problems, companies: companies}
}

func (h *CatalogHandler) RegisterRoutes(r fiber.Router, g Guards) {
	if r == nil {
		return
	}

	r.Get("/problems", h.ListProblems)
	r.Get("/problems/:id", h.GetProblem)
	r.Get("/companies", h.ListCompanies)
	mount(r, fiber.MethodPost, "/problems", g.Admin, h.CreateProblem)
	mount(r, fiber.MethodPost, "/companies", g.Admin, h.CreateCompany)
}

func (h *CatalogHandler) ListProblems(c fiber.Ctx) error {
	out, err := h.problems.List(c.Context())
	if err != nil {
		return internalError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *CatalogHandler) GetProblem(c fiber.Ctx) error {
	id, err := idParam(c, "id", msgProblemNotFound)
	if err != nil {
		return err
	}

	out, err := h.problems.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, problem.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, msgProblemNotFound, nil, err)
		}
		return internalError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *CatalogHandler) CreateProblem(c fiber.Ctx) error {
	var req problemRequest
	if err := bindBody(c, &req, "Invalid request payload"); err != nil {
		return err
	}

	out, err := h.problems.Create(c.Context(), problem.Problem{
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		TestCases:   req.TestCases,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidProblem):
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid problem", nil, err)
		case errors.Is(err, problem.ErrDuplicateTitle):
			return middleware.NewAppError(fiber.StatusConflict, "Problem with this title already exists", nil, err)
		default:
			return internalError(err)
		}
	}
	return response.Success(c, fiber.StatusCreated, "Problem created", out)
}

func (h *CatalogHandler) ListCompanies(c fiber.Ctx) error {
	out, err := h.companies.List(c.Context())
	if err != nil {
		return internalError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *CatalogHandler) CreateCompany(c fiber.Ctx) error {
	var req companyRequest
	if err := bindBody(c, &req, "Invalid request payload"); err != nil {
		return err
	}

	out, err := h.companies.Create(c.Context(), company.Company{
		Name:              req.Name,
		Description:       req.Description,
		LogoURL:           req.LogoURL,
		Rounds:            req.Rounds,
		Topics:            req.Topics,
		PreviousQuestions: req.PreviousQuestions,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCompany):
			return middleware.NewAppError(fiber.StatusBadRequest, "Company name is required", nil, err)
		case errors.Is(err, company.ErrDuplicateName):
			return middleware.NewAppError(fiber.StatusConflict, "Company already exists", nil, err)
		default:
			return internalError(err)
		}
	}
	return response.Success(c, fiber.StatusCreated, "Company created", out)
}
