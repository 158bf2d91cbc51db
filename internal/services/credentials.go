// Package services contains the application services: credential
// management, result entry and aggregation, the encrypted audit log,
// and database backups.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"gradebook/internal/common"
	"gradebook/internal/models"
	"gradebook/internal/password"
	"gradebook/internal/repositories/students"
	"gradebook/internal/repositories/teachers"
)

// dummyHash is compared against when the username does not exist, so a
// failed lookup costs the same as a failed password check and the two
// cannot be told apart by timing.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("gradebook-dummy-password"), bcrypt.DefaultCost)

// StudentRegistration carries the inputs for a new student account.
type StudentRegistration struct {
	Username string
	Password string
	RollNo   string
	Name     string
	Batch    string
}

// TeacherRegistration carries the inputs for a new teacher account.
type TeacherRegistration struct {
	Username   string
	Password   string
	Name       string
	Department string
}

// CredentialService registers, authenticates and resets accounts.
// Passwords are stored only as bcrypt hashes with per-record salts;
// verification recomputes the hash, nothing is ever decrypted.
type CredentialService struct {
	students students.Repository
	teachers teachers.Repository
	cost     int
}

func NewCredentialService(st students.Repository, th teachers.Repository, bcryptCost int) *CredentialService {
	return &CredentialService{students: st, teachers: th, cost: bcryptCost}
}

// RegisterStudent creates a student account. The password must satisfy
// the strength policy; duplicate usernames or roll numbers yield
// common.ErrDuplicateIdentity.
func (s *CredentialService) RegisterStudent(ctx context.Context, reg StudentRegistration) (int64, error) {
	hash, err := s.hashPassword(reg.Password)
	if err != nil {
		return 0, err
	}

	st, err := s.students.Create(ctx, &models.Student{
		Username:     reg.Username,
		PasswordHash: hash,
		RollNo:       reg.RollNo,
		Name:         reg.Name,
		Batch:        reg.Batch,
	})
	if err != nil {
		return 0, err
	}
	return st.ID, nil
}

// RegisterTeacher creates a teacher account.
func (s *CredentialService) RegisterTeacher(ctx context.Context, reg TeacherRegistration) (int64, error) {
	hash, err := s.hashPassword(reg.Password)
	if err != nil {
		return 0, err
	}

	th, err := s.teachers.Create(ctx, &models.Teacher{
		Username:     reg.Username,
		PasswordHash: hash,
		Name:         reg.Name,
		Department:   reg.Department,
	})
	if err != nil {
		return 0, err
	}
	return th.ID, nil
}

// Authenticate verifies the credentials for the given role and returns
// the account id. A wrong username and a wrong password both yield
// common.ErrAuthenticationFailed with no distinguishing signal.
func (s *CredentialService) Authenticate(ctx context.Context, role models.Role, username, pw string) (int64, error) {
	var id int64
	var hash []byte

	switch role {
	case models.RoleStudent:
		st, err := s.students.GetByUsername(ctx, username)
		if err != nil {
			return 0, s.failClosed(err, pw)
		}
		id, hash = st.ID, st.PasswordHash
	case models.RoleTeacher:
		th, err := s.teachers.GetByUsername(ctx, username)
		if err != nil {
			return 0, s.failClosed(err, pw)
		}
		id, hash = th.ID, th.PasswordHash
	default:
		return 0, fmt.Errorf("unknown role %q", role)
	}

	if bcrypt.CompareHashAndPassword(hash, []byte(pw)) != nil {
		return 0, common.ErrAuthenticationFailed
	}
	return id, nil
}

// Exists reports whether an account with this username exists for the
// role. Used by the reset flow before prompting for a new password.
func (s *CredentialService) Exists(ctx context.Context, role models.Role, username string) (bool, error) {
	var err error
	switch role {
	case models.RoleStudent:
		_, err = s.students.GetByUsername(ctx, username)
	case models.RoleTeacher:
		_, err = s.teachers.GetByUsername(ctx, username)
	default:
		return false, fmt.Errorf("unknown role %q", role)
	}

	if errors.Is(err, common.ErrorNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Reset overwrites the password for an existing account. Unknown
// usernames yield common.ErrUnknownIdentity.
func (s *CredentialService) Reset(ctx context.Context, role models.Role, username, newPw string) error {
	hash, err := s.hashPassword(newPw)
	if err != nil {
		return err
	}

	switch role {
	case models.RoleStudent:
		err = s.students.UpdatePasswordHash(ctx, username, hash)
	case models.RoleTeacher:
		err = s.teachers.UpdatePasswordHash(ctx, username, hash)
	default:
		return fmt.Errorf("unknown role %q", role)
	}

	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrUnknownIdentity
	}
	return err
}

func (s *CredentialService) hashPassword(pw string) ([]byte, error) {
	if violations := password.Validate(pw); len(violations) > 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrValidation, strings.Join(violations, "; "))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	return hash, nil
}

// failClosed burns a bcrypt comparison on lookup failure before
// returning the generic authentication error.
func (s *CredentialService) failClosed(lookupErr error, pw string) error {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(pw))
	if errors.Is(lookupErr, common.ErrorNotFound) {
		return common.ErrAuthenticationFailed
	}
	return lookupErr
}
