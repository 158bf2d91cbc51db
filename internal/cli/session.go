package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gradebook/internal/common"
	"gradebook/internal/models"
	"gradebook/internal/password"
	"gradebook/internal/services"
)

// maxRegisterAttempts bounds the retry-on-duplicate loop so a stubborn
// duplicate cannot recurse forever.
const maxRegisterAttempts = 3

// askRole prompts until the user names a valid role.
func (a *App) askRole() (models.Role, error) {
	text, err := GetSimpleText(a.reader, "Are you a [student] or [teacher]?", a.out)
	if err != nil {
		return "", err
	}
	role := models.Role(strings.ToLower(text))
	if !role.Valid() {
		return "", fmt.Errorf("invalid role %q", text)
	}
	return role, nil
}

// askNewPassword prompts for a new password until it satisfies the
// strength policy and matches its confirmation. Violations are all
// reported at once and recovered by re-prompting, never surfaced as
// fatal.
func (a *App) askNewPassword(prompt string) (string, error) {
	for {
		pw, err := GetPassword(prompt, a.out)
		if err != nil {
			return "", err
		}

		if violations := password.Validate(string(pw)); len(violations) > 0 {
			fmt.Fprintln(a.out, "Weak password:")
			for _, v := range violations {
				fmt.Fprintln(a.out, " - "+v)
			}
			fmt.Fprintln(a.out, "Please try again.")
			common.WipeByteArray(pw)
			continue
		}

		confirm, err := GetPassword("Confirm password: ", a.out)
		if err != nil {
			common.WipeByteArray(pw)
			return "", err
		}
		if string(pw) != string(confirm) {
			fmt.Fprintln(a.out, "Passwords do not match. Try again.")
			common.WipeByteArray(pw)
			common.WipeByteArray(confirm)
			continue
		}

		common.WipeByteArray(confirm)
		return string(pw), nil
	}
}

// Register creates a new account. On a duplicate identity the user is
// offered exactly two recovery paths: log in instead, or retry with
// different details. The retry loop is bounded.
func (a *App) Register(ctx context.Context) error {
	role, err := a.askRole()
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	for attempt := 0; attempt < maxRegisterAttempts; attempt++ {
		username, err := GetSimpleText(a.reader, fmt.Sprintf("Enter %s username", role), a.out)
		if err != nil {
			return err
		}

		var regErr error
		switch role {
		case models.RoleStudent:
			var reg services.StudentRegistration
			reg.Username = username
			if reg.RollNo, err = GetSimpleText(a.reader, "Enter roll number", a.out); err != nil {
				return err
			}
			if reg.Name, err = GetSimpleText(a.reader, "Enter student name", a.out); err != nil {
				return err
			}
			if reg.Batch, err = GetSimpleText(a.reader, "Enter batch (e.g. 2025)", a.out); err != nil {
				return err
			}
			if reg.Password, err = a.askNewPassword("Enter new password: "); err != nil {
				return err
			}
			_, regErr = a.creds.RegisterStudent(ctx, reg)

		case models.RoleTeacher:
			var reg services.TeacherRegistration
			reg.Username = username
			if reg.Name, err = GetSimpleText(a.reader, "Enter teacher name", a.out); err != nil {
				return err
			}
			if reg.Department, err = GetSimpleText(a.reader, "Enter department", a.out); err != nil {
				return err
			}
			if reg.Password, err = a.askNewPassword("Enter new password: "); err != nil {
				return err
			}
			_, regErr = a.creds.RegisterTeacher(ctx, reg)
		}

		switch {
		case regErr == nil:
			fmt.Fprintln(a.out, "Registered successfully.")
			a.record(ctx, username, role, "Registered new account.")
			return nil

		case errors.Is(regErr, common.ErrDuplicateIdentity):
			fmt.Fprintln(a.out, "Username or roll number already exists.")
			choice, err := GetSimpleText(a.reader, "Do you want to [L]ogin or [T]ry again? (L/T)", a.out)
			if err != nil {
				return err
			}
			if strings.EqualFold(choice, "l") {
				return a.Login(ctx)
			}
			// fall through to the next attempt

		default:
			fmt.Fprintln(a.out, regErr.Error())
			return regErr
		}
	}

	fmt.Fprintln(a.out, "Too many attempts.")
	return nil
}

// Login authenticates and, on success, hands control to the role portal
// until logout. Failures stay anonymous and are audited without
// revealing which field was wrong.
func (a *App) Login(ctx context.Context) error {
	role, err := a.askRole()
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	username, err := GetSimpleText(a.reader, fmt.Sprintf("Enter %s username", role), a.out)
	if err != nil {
		return err
	}
	pw, err := GetPassword("Enter password: ", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	userID, err := a.creds.Authenticate(ctx, role, username, string(pw))
	if err != nil {
		fmt.Fprintln(a.out, "Invalid username or password.")
		a.record(ctx, username, role, "Failed login attempt.")
		return nil
	}

	a.role, a.userID, a.username = role, userID, username
	fmt.Fprintf(a.out, "Login successful. Welcome, %s.\n", username)
	a.record(ctx, username, role, "Logged in.")

	if role == models.RoleTeacher {
		a.teacherPortal(ctx)
	} else {
		a.studentPortal(ctx)
	}

	a.record(ctx, username, role, "Logged out.")
	a.role, a.userID, a.username = "", 0, ""
	return nil
}

// ForgotPassword resets a password through the verified flow. An
// unknown username is reported as "not found" and nothing more.
func (a *App) ForgotPassword(ctx context.Context) error {
	role, err := a.askRole()
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	username, err := GetSimpleText(a.reader, fmt.Sprintf("Enter your %s username", role), a.out)
	if err != nil {
		return err
	}

	exists, err := a.creds.Exists(ctx, role, username)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	if !exists {
		fmt.Fprintln(a.out, "Username not found.")
		return nil
	}

	newPw, err := a.askNewPassword("Enter new password: ")
	if err != nil {
		return err
	}

	if err := a.creds.Reset(ctx, role, username, newPw); err != nil {
		if errors.Is(err, common.ErrUnknownIdentity) {
			fmt.Fprintln(a.out, "Username not found.")
			return nil
		}
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	fmt.Fprintln(a.out, "Password reset successful.")
	a.record(ctx, username, role, "Password reset.")
	return nil
}
