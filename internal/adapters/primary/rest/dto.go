package rest

import (
	"time"

	"github.com/abhinavnt/article-hub/internal/core/domain"
)

// --- REQUESTS ---

type RegisterRequest struct {
	FirstName            string   `json:"firstName" validate:"required"`
	LastName             string   `json:"lastName" validate:"required"`
	Email                string   `json:"email" validate:"required,email"`
	Phone                string   `json:"phone" validate:"required"`
	DateOfBirth          string   `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Password             string   `json:"password" validate:"required"`
	PasswordConfirmation string   `json:"confirmPassword" validate:"required"`
	ArticlePreferences   []string `json:"articlePreferences"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"` // email ou téléphone
	Password   string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

type CreateArticleRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Content     string   `json:"content" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Tags        []string `json:"tags"`
}

type UpdateArticleRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Content     *string  `json:"content"`
	Category    *string  `json:"category"`
	Tags        []string `json:"tags"`
	Status      *string  `json:"status" validate:"omitempty,oneof=draft published"`
}

type UpdateProfileRequest struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	Phone       *string `json:"phone"`
	DateOfBirth *string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
}

type PreferencesRequest struct {
	ArticlePreferences []string `json:"articlePreferences"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// --- RESPONSES ---

type FeedEntryResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Content      string    `json:"content"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	Tags         []string  `json:"tags"`
	Status       string    `json:"status"`
	CategoryName string    `json:"categoryName"`
	AuthorID     string    `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	AuthorAvatar string    `json:"authorAvatar,omitempty"`
	UserLiked    bool      `json:"userLiked"`
	UserDisliked bool      `json:"userDisliked"`
	LikeCount    int       `json:"likeCount"`
	DislikeCount int       `json:"dislikeCount"`
	BlockCount   int       `json:"blockCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type FeedResponse struct {
	Articles []FeedEntryResponse `json:"articles"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"pageSize"`
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ArticleResponse struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Content      string           `json:"content"`
	ImageURL     string           `json:"imageUrl,omitempty"`
	Tags         []string         `json:"tags"`
	Category     CategoryResponse `json:"category"`
	UserID       string           `json:"userId"`
	Status       string           `json:"status"`
	LikeCount    int              `json:"likeCount"`
	DislikeCount int              `json:"dislikeCount"`
	BlockedCount int              `json:"blockedCount"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

type ArticleCreatedResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type UserResponse struct {
	UserID             string     `json:"userId"`
	FirstName          string     `json:"firstName"`
	LastName           string     `json:"lastName"`
	Email              string     `json:"email"`
	Phone              string     `json:"phone"`
	DateOfBirth        *time.Time `json:"dateOfBirth,omitempty"`
	ArticlePreferences []string   `json:"articlePreferences"`
	Role               string     `json:"role"`
	Status             string     `json:"status"`
	ProfileImageURL    string     `json:"profileImageUrl,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

type AuthResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken,omitempty"`
	User         UserResponse `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// --- MAPPERS (Domain -> JSON) ---

func toFeedEntryResponse(e domain.FeedEntry) FeedEntryResponse {
	return FeedEntryResponse{
		ID:           e.ID,
		Title:        e.Title,
		Description:  e.Description,
		Content:      e.Content,
		ImageURL:     e.ImageURL,
		Tags:         nonNilTags(e.Tags),
		Status:       string(e.Status),
		CategoryName: e.CategoryName,
		AuthorID:     e.AuthorID,
		AuthorName:   e.AuthorName,
		AuthorAvatar: e.AuthorAvatar,
		UserLiked:    e.UserLiked,
		UserDisliked: e.UserDisliked,
		LikeCount:    e.LikeCount,
		DislikeCount: e.DislikeCount,
		BlockCount:   e.BlockCount,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toArticleResponse(a *domain.Article) ArticleResponse {
	return ArticleResponse{
		ID:           a.ID,
		Title:        a.Title,
		Description:  a.Description,
		Content:      a.Content,
		ImageURL:     a.ImageURL,
		Tags:         nonNilTags(a.Tags),
		Category:     CategoryResponse{ID: a.CategoryID, Name: a.CategoryName},
		UserID:       a.OwnerID,
		Status:       string(a.Status),
		LikeCount:    a.LikeCount(),
		DislikeCount: a.DislikeCount(),
		BlockedCount: a.BlockCount(),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func toCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

func toUserResponse(u *domain.User) UserResponse {
	resp := UserResponse{
		UserID:             u.ID,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Email:              u.Email,
		Phone:              u.Phone,
		ArticlePreferences: nonNilTags(u.ArticlePreferences),
		Role:               string(u.Role),
		Status:             string(u.Status),
		ProfileImageURL:    u.ProfileImageURL,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
	if !u.DateOfBirth.IsZero() {
		dob := u.DateOfBirth
		resp.DateOfBirth = &dob
	}
	return resp
}

func nonNilTags(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
