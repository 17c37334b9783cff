package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/subhamroy/case-registry/internal/auth"
	"github.com/subhamroy/case-registry/internal/cases"
	"github.com/subhamroy/case-registry/internal/config"
	"github.com/subhamroy/case-registry/internal/database"
	"github.com/subhamroy/case-registry/internal/files"
	"github.com/subhamroy/case-registry/internal/pdf"
	"github.com/subhamroy/case-registry/pkg/logger"
	"gorm.io/gorm"
)

// Handlers holds all HTTP handlers
type Handlers struct {
	db      *gorm.DB
	store   *cases.Store
	storage *files.Storage
	tokens  *auth.Manager
	logger  *logger.Logger
	cfg     *config.Config
}

// NewHandlers creates a new handlers instance
func NewHandlers(db *gorm.DB, store *cases.Store, storage *files.Storage, tokens *auth.Manager, logger *logger.Logger, cfg *config.Config) *Handlers {
	return &Handlers{
		db:      db,
		store:   store,
		storage: storage,
		tokens:  tokens,
		logger:  logger,
		cfg:     cfg,
	}
}

var userRoles = []string{database.UserRoleAdmin, database.UserRoleStaff, database.UserRolePublic}

// Register creates a new user account
func (h *Handlers) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" || req.Role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide username, password, and role"})
		return
	}
	if !roleValid(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid role."})
		return
	}

	var count int64
	if err := h.db.Model(&database.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		h.serverError(c, "Server error during registration", err)
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.serverError(c, "Server error during registration", err)
		return
	}

	user := database.User{Username: req.Username, PasswordHash: hash, Role: req.Role}
	if err := h.db.Create(&user).Error; err != nil {
		h.serverError(c, "Server error during registration", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
	})
}

// Login authenticates a user and returns a signed token
func (h *Handlers) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide username and password"})
		return
	}

	var user database.User
	err := h.db.Where("username = ?", req.Username).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		h.serverError(c, "Server error during login", err)
		return
	}
	// The same response for an unknown username and a wrong password.
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
		return
	}

	token, err := h.tokens.IssueToken(user.ID, user.Role)
	if err != nil {
		h.serverError(c, "Server error during login", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
		"token":    token,
	})
}

// ListCases returns a page of cases with nested parties and advocates
func (h *Handlers) ListCases(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.cfg.DefaultPageSize)))
	if err != nil || limit < 1 {
		limit = h.cfg.DefaultPageSize
	}
	if limit > h.cfg.MaxPageSize {
		limit = h.cfg.MaxPageSize
	}

	result, err := h.store.List(c.Request.Context(), page, limit)
	if err != nil {
		h.serverError(c, "Server error", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateCase creates a case aggregate
func (h *Handlers) CreateCase(c *gin.Context) {
	var input cases.CaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid case payload: " + err.Error()})
		return
	}

	caseID, err := h.store.Create(c.Request.Context(), &input)
	if err != nil {
		if errors.Is(err, cases.ErrDuplicateCaseNo) {
			c.JSON(http.StatusConflict, gin.H{"message": "A case with this case number already exists"})
			return
		}
		h.serverError(c, "Server error during case creation.", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Case created successfully", "caseId": caseID})
}

// GetCase returns a single case aggregate by id
func (h *Handlers) GetCase(c *gin.Context) {
	id, ok := h.caseID(c)
	if !ok {
		return
	}

	detail, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, cases.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Case not found"})
			return
		}
		h.serverError(c, "Server error", err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateCase replaces the case's scalar fields and associations
func (h *Handlers) UpdateCase(c *gin.Context) {
	id, ok := h.caseID(c)
	if !ok {
		return
	}

	var input cases.CaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid case payload: " + err.Error()})
		return
	}

	if err := h.store.Update(c.Request.Context(), id, &input); err != nil {
		switch {
		case errors.Is(err, cases.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Case not found"})
		case errors.Is(err, cases.ErrDuplicateCaseNo):
			c.JSON(http.StatusConflict, gin.H{"message": "A case with this case number already exists"})
		default:
			h.serverError(c, "Server error during case update.", err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Case updated successfully"})
}

// DeleteCase removes a case and its owned rows
func (h *Handlers) DeleteCase(c *gin.Context) {
	id, ok := h.caseID(c)
	if !ok {
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, cases.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Case not found"})
			return
		}
		h.serverError(c, "Server error", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Case deleted successfully"})
}

// CasePDF renders the case summary as a PDF download
func (h *Handlers) CasePDF(c *gin.Context) {
	id, ok := h.caseID(c)
	if !ok {
		return
	}

	detail, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, cases.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Case not found"})
			return
		}
		h.serverError(c, "Server error while generating PDF", err)
		return
	}

	data, err := pdf.RenderCaseSummary(detail)
	if err != nil {
		h.serverError(c, "Server error while generating PDF", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+pdf.Filename(detail.CaseNo)+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// ListFiles returns file metadata for a case
func (h *Handlers) ListFiles(c *gin.Context) {
	id, ok := h.caseID(c)
	if !ok {
		return
	}

	records, err := h.storage.ListForCase(c.Request.Context(), id)
	if err != nil {
		h.serverError(c, "Server error", err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// UploadFile accepts a multipart upload for a case
func (h *Handlers) UploadFile(c *gin.Context) {
	id, ok := h.caseID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("caseFile")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error: No File Selected!"})
		return
	}

	record, err := h.storage.Save(c.Request.Context(), id, header)
	if err != nil {
		switch {
		case errors.Is(err, files.ErrFileType):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Error: Files of this type are not allowed!"})
		case errors.Is(err, files.ErrFileTooLarge):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Error: File is too large!"})
		case errors.Is(err, files.ErrCaseNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Case not found"})
		default:
			h.serverError(c, "Database error while saving file metadata.", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "File uploaded successfully",
		"file":    record,
	})
}

// DeleteFile removes a file's blob and metadata row
func (h *Handlers) DeleteFile(c *gin.Context) {
	fileID, err := strconv.ParseUint(c.Param("fileId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid file ID"})
		return
	}

	if err := h.storage.Delete(c.Request.Context(), uint(fileID)); err != nil {
		if errors.Is(err, files.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "File not found."})
			return
		}
		h.serverError(c, "Error deleting file from server.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully."})
}

// HealthCheck returns the health status
func (h *Handlers) HealthCheck(c *gin.Context) {
	var count int64
	dbHealthy := h.db.Model(&database.Case{}).Count(&count).Error == nil

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": dbHealthy,
	})
}

// caseID parses the :id path parameter, responding 400 on garbage.
func (h *Handlers) caseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid case ID"})
		return 0, false
	}
	return uint(id), true
}

// serverError logs the cause and returns a generic message.
func (h *Handlers) serverError(c *gin.Context, message string, err error) {
	h.logger.Error(message, "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": message})
}

func roleValid(role string) bool {
	for _, r := range userRoles {
		if role == r {
			return true
		}
	}
	return false
}
