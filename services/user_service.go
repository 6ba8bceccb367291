package services

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ytgov/digital-marketplace/models"
	"github.com/ytgov/digital-marketplace/permissions"
	"github.com/ytgov/digital-marketplace/repository"
	"github.com/ytgov/digital-marketplace/utils"
	"github.com/ytgov/digital-marketplace/utils/logger"
	"github.com/ytgov/digital-marketplace/validation"
)

// Messages surfaced by the user guards.
const (
	MsgEmailTaken         = "An account with this email already exists."
	MsgInvalidCredentials = "Invalid email or password."
	MsgAccountInactive    = "This account has been deactivated."
	MsgProfileRequired    = "A profile is required for this action."
	MsgUserRaced          = "The account was modified by another request. Please try again."
)

var validate = validator.New()

// UserService owns account registration, authentication and the tagged
// profile updates, including terms acceptance.
type UserService struct {
	userRepo repository.UserRepositoryInterface
	logger   logger.Logger
	now      func() time.Time
}

func NewUserService(userRepo repository.UserRepositoryInterface, log logger.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		now:      time.Now,
		logger:   log,
	}
}

// RegisterIntention is the validated description of a registration.
type RegisterIntention struct {
	Email        string
	PasswordHash string
	Name         string
	Type         models.UserType
	JobTitle     string
}

// UserTransition is the validated description of a tagged user update.
type UserTransition struct {
	User    *models.User
	Tag     string
	Profile *models.UpdateProfileRequest
}

// ValidateRegister runs the registration guard. Anyone may register a
// vendor or government account; admins are provisioned out of band.
func (s *UserService) ValidateRegister(ctx context.Context, req *models.RegisterUser) (validation.Validation[RegisterIntention], error) {
	var zero validation.Validation[RegisterIntention]

	errs := validation.Struct(validate, req)
	if !errs.Empty() {
		return validation.Invalid[RegisterIntention](errs), nil
	}

	existing, err := s.userRepo.ReadOneUserByEmail(ctx, req.Email)
	if err != nil {
		return zero, err
	}
	if existing != nil {
		return validation.Invalid[RegisterIntention](validation.Errors{"email": {MsgEmailTaken}}), nil
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return zero, err
	}
	return validation.Valid(RegisterIntention{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Type:         models.UserType(req.Type),
		JobTitle:     req.JobTitle,
	}), nil
}

// ExecuteRegister performs the single write for an accepted registration.
func (s *UserService) ExecuteRegister(ctx context.Context, intention RegisterIntention) (*models.User, error) {
	return s.userRepo.CreateUser(ctx, &models.User{
		Type:         intention.Type,
		Status:       models.UserStatusActive,
		Name:         intention.Name,
		Email:        intention.Email,
		JobTitle:     intention.JobTitle,
		PasswordHash: intention.PasswordHash,
	})
}

// Authenticate checks a credential pair and records the login time. The
// same message covers a missing account and a wrong password.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, validation.Errors, error) {
	user, err := s.userRepo.ReadOneUserByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || !utils.CheckPassword(user.PasswordHash, password) {
		return nil, validation.Errors{"credentials": {MsgInvalidCredentials}}, nil
	}
	if user.Status != models.UserStatusActive {
		return nil, validation.Errors{"credentials": {MsgAccountInactive}}, nil
	}

	updated, err := s.userRepo.UpdateUser(ctx, user, map[string]interface{}{
		"last_login_at": s.now(),
	})
	if err != nil {
		if isConditionFailed(err) {
			// A raced login stamp is harmless; sign the token anyway.
			return user, nil, nil
		}
		return nil, nil, err
	}
	return updated, nil, nil
}

// ValidateUpdate runs the guard for a tagged user update.
func (s *UserService) ValidateUpdate(ctx context.Context, session *models.Session, id string, req *models.UpdateUserRequest) (validation.Validation[UserTransition], error) {
	var zero validation.Validation[UserTransition]

	switch req.Tag {
	case models.UserTagUpdateProfile, models.UserTagAcceptTerms:
	default:
		return validation.Invalid[UserTransition](validation.Errors{"tag": {MsgUnrecognizedAction}}), nil
	}

	user, err := s.userRepo.ReadOneUser(ctx, id)
	if err != nil {
		return zero, err
	}
	if user == nil {
		return validation.Invalid[UserTransition](validation.Errors{"user": {MsgUserNotFound}}), nil
	}

	transition := UserTransition{User: user, Tag: req.Tag}

	switch req.Tag {
	case models.UserTagUpdateProfile:
		if req.Profile == nil {
			return validation.Invalid[UserTransition](validation.Errors{"value": {MsgProfileRequired}}), nil
		}
		if errs := validation.Struct(validate, req.Profile); !errs.Empty() {
			return validation.Invalid[UserTransition](errs), nil
		}
		if req.Profile.Email != user.Email {
			existing, err := s.userRepo.ReadOneUserByEmail(ctx, req.Profile.Email)
			if err != nil {
				return zero, err
			}
			if existing != nil {
				return validation.Invalid[UserTransition](validation.Errors{"email": {MsgEmailTaken}}), nil
			}
		}
		if !permissions.UpdateUser(session, user.ID) {
			return validation.Invalid[UserTransition](validation.PermissionErrors(permissions.ErrorMessage)), nil
		}
		transition.Profile = req.Profile

	case models.UserTagAcceptTerms:
		if !permissions.AcceptTerms(session, user.ID) {
			return validation.Invalid[UserTransition](validation.PermissionErrors(permissions.ErrorMessage)), nil
		}
	}

	return validation.Valid(transition), nil
}

// ExecuteUpdate performs the single conditional write for an accepted
// user transition.
func (s *UserService) ExecuteUpdate(ctx context.Context, transition UserTransition) (*models.User, validation.Errors, error) {
	updates := map[string]interface{}{}

	switch transition.Tag {
	case models.UserTagUpdateProfile:
		updates["name"] = transition.Profile.Name
		updates["email"] = transition.Profile.Email
		updates["job_title"] = transition.Profile.JobTitle
		updates["notifications_on"] = transition.Profile.NotificationsOn
	case models.UserTagAcceptTerms:
		updates["accepted_terms"] = s.now()
	}

	updated, err := s.userRepo.UpdateUser(ctx, transition.User, updates)
	if err != nil {
		if isConditionFailed(err) {
			return nil, validation.Errors{"user": {MsgUserRaced}}, nil
		}
		return nil, nil, err
	}
	return updated, nil, nil
}

// ReadOne returns a single user. Accounts are visible to themselves and
// to admins.
func (s *UserService) ReadOne(ctx context.Context, session *models.Session, id string) (*models.User, validation.Errors, error) {
	user, err := s.userRepo.ReadOneUser(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, validation.Errors{"user": {MsgUserNotFound}}, nil
	}
	if !permissions.ReadOneUser(session, user.ID) {
		return nil, validation.PermissionErrors(permissions.ErrorMessage), nil
	}
	return user, nil, nil
}

// ReadMany lists user summaries for admins.
func (s *UserService) ReadMany(ctx context.Context, session *models.Session) ([]models.UserSlim, validation.Errors, error) {
	if !permissions.ReadManyUsers(session) {
		return nil, validation.PermissionErrors(permissions.ErrorMessage), nil
	}
	users, err := s.userRepo.ReadManyUsers(ctx)
	if err != nil {
		return nil, nil, err
	}
	slims := make([]models.UserSlim, 0, len(users))
	for _, u := range users {
		slims = append(slims, u.Slim())
	}
	return slims, nil, nil
}
