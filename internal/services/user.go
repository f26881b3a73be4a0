package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gorm.io/datatypes"

	"github.com/yungbote/analogyai-backend/internal/data/repos"
	types "github.com/yungbote/analogyai-backend/internal/domain"
	"github.com/yungbote/analogyai-backend/internal/pkg/dbctx"
	"github.com/yungbote/analogyai-backend/internal/platform/ctxutil"
	"github.com/yungbote/analogyai-backend/internal/platform/logger"
)

// ProfileUpdate is a partial profile merge; nil fields are left untouched.
type ProfileUpdate struct {
	DisplayName              *string   `json:"displayName"`
	PersonalizationInterests *[]string `json:"personalizationInterests"`
	DefaultKnowledgeLevel    *string   `json:"defaultKnowledgeLevel" validate:"omitnil,oneof=beginner intermediate advanced"`
	AnalogyStyle             *string   `json:"analogyStyle" validate:"omitnil,oneof=conversational technical creative"`
	SaveHistory              *bool     `json:"saveHistory"`
}

// DecodeProfileUpdate parses a profile update body, rejecting unknown fields.
func DecodeProfileUpdate(r io.Reader) (ProfileUpdate, error) {
	var in ProfileUpdate
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return in, nil
		}
		verr := &ValidationError{}
		if field, ok := unknownField(err); ok {
			verr.add(field, "is not an allowed profile field")
		} else {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) && typeErr.Field != "" {
				verr.add(typeErr.Field, "has the wrong type")
			} else {
				verr.add("body", "must be a JSON object")
			}
		}
		return ProfileUpdate{}, verr
	}
	if dec.More() {
		return ProfileUpdate{}, &ValidationError{Fields: []FieldError{{Field: "body", Message: "must contain a single JSON object"}}}
	}
	return in, nil
}

// encoding/json reports unknown fields only through the error text.
func unknownField(err error) (string, bool) {
	const marker = "json: unknown field "
	msg := err.Error()
	if !strings.HasPrefix(msg, marker) {
		return "", false
	}
	return strings.Trim(strings.TrimPrefix(msg, marker), `"`), true
}

type UserService interface {
	EnsureUser(ctx context.Context, id *ctxutil.Identity) (*types.User, error)
	GetProfile(ctx context.Context, userID string) (*types.User, error)
	UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*types.User, error)
}

type userService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(log *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{
		log:      log.With("service", "UserService"),
		userRepo: userRepo,
	}
}

// EnsureUser creates the caller's user on first sight and refreshes the
// identity columns when the provider supplies new values.
func (us *userService) EnsureUser(ctx context.Context, id *ctxutil.Identity) (*types.User, error) {
	if id == nil || strings.TrimSpace(id.UserID) == "" {
		return nil, ErrUnauthorized
	}
	dbc := dbctx.New(ctx)
	existing, err := us.userRepo.GetByID(dbc, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if existing != nil && !identityChanged(existing, id) {
		return existing, nil
	}
	u := types.NewUser(id.UserID, id.Email)
	u.FirstName = id.FirstName
	u.LastName = id.LastName
	u.ProfileImageURL = id.ProfileImageURL
	saved, err := us.userRepo.Upsert(dbc, u)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	if existing == nil {
		us.log.Info("user created", "user_id", id.UserID, "strategy", id.Strategy)
	}
	return saved, nil
}

func identityChanged(u *types.User, id *ctxutil.Identity) bool {
	changed := func(have, want string) bool { return want != "" && want != have }
	return changed(u.Email, id.Email) ||
		changed(u.FirstName, id.FirstName) ||
		changed(u.LastName, id.LastName) ||
		changed(u.ProfileImageURL, id.ProfileImageURL)
}

func (us *userService) GetProfile(ctx context.Context, userID string) (*types.User, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	u, err := us.userRepo.GetByID(dbctx.New(ctx), userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if u == nil {
		return nil, notFound("user")
	}
	return u, nil
}

func (us *userService) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*types.User, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if in.DisplayName != nil {
		updates["display_name"] = strings.TrimSpace(*in.DisplayName)
	}
	if in.PersonalizationInterests != nil {
		interests := datatypes.JSONSlice[string]{}
		for _, s := range *in.PersonalizationInterests {
			if s = strings.TrimSpace(s); s != "" {
				interests = append(interests, s)
			}
		}
		updates["personalization_interests"] = interests
	}
	if in.DefaultKnowledgeLevel != nil {
		updates["default_knowledge_level"] = types.KnowledgeLevel(*in.DefaultKnowledgeLevel)
	}
	if in.AnalogyStyle != nil {
		updates["analogy_style"] = types.AnalogyStyle(*in.AnalogyStyle)
	}
	if in.SaveHistory != nil {
		updates["save_history"] = *in.SaveHistory
	}

	dbc := dbctx.New(ctx)
	existing, err := us.userRepo.GetByID(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if existing == nil {
		return nil, notFound("user")
	}
	if len(updates) == 0 {
		return existing, nil
	}
	u, err := us.userRepo.Update(dbc, userID, updates)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if u == nil {
		return nil, notFound("user")
	}
	us.log.Debug("profile updated", "user_id", userID, "fields", len(updates))
	return u, nil
}
