package services

import (
	"errors"
	"testing"

	"pharmacare_backend/internal/models"
	"pharmacare_backend/internal/repositories"
	"pharmacare_backend/pkg/utils"
)

func newAuthServiceForTest(t *testing.T) AuthService {
	t.Helper()
	utils.InitJWT("test-secret")
	db := newTestDB(t)
	return NewAuthService(repositories.NewUserRepository(db), db)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthServiceForTest(t)

	user, err := svc.RegisterUser(models.RegistrationPayload{
		Username: "aigerim",
		Password: "secret99",
		Role:     models.RolePharmacist,
	})
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if user.Role != models.RolePharmacist {
		t.Errorf("role = %q, want pharmacist", user.Role)
	}
	if user.PasswordHash == "secret99" {
		t.Error("password stored in plain text")
	}

	resp, err := svc.LoginUser(models.Credentials{Username: "aigerim", Password: "secret99"})
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("expected both tokens in login response")
	}

	claims, err := utils.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != models.RolePharmacist {
		t.Errorf("claims = %+v, want user %d with pharmacist role", claims, user.ID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthServiceForTest(t)

	if _, err := svc.RegisterUser(models.RegistrationPayload{Username: "bob", Password: "secret99"}); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}

	_, err := svc.LoginUser(models.Credentials{Username: "bob", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}

	_, err = svc.LoginUser(models.Credentials{Username: "nobody", Password: "secret99"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthServiceForTest(t)

	if _, err := svc.RegisterUser(models.RegistrationPayload{Username: "carol", Password: "secret99"}); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}

	_, err := svc.RegisterUser(models.RegistrationPayload{Username: "carol", Password: "other123"})
	if !errors.Is(err, ErrUsernameExists) {
		t.Errorf("duplicate username: err = %v, want ErrUsernameExists", err)
	}

	_, err = svc.RegisterUser(models.RegistrationPayload{Username: "dana", Password: "short"})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("short password: err = %v, want ErrValidation", err)
	}

	_, err = svc.RegisterUser(models.RegistrationPayload{Username: "erik", Password: "secret99", Role: "janitor"})
	if !errors.Is(err, ErrInvalidRole) {
		t.Errorf("bad role: err = %v, want ErrInvalidRole", err)
	}

	user, err := svc.RegisterUser(models.RegistrationPayload{Username: "fay", Password: "secret99"})
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if user.Role != models.RoleCashier {
		t.Errorf("default role = %q, want cashier", user.Role)
	}
}

func TestEnsureDefaultAdminSeedsOnce(t *testing.T) {
	svc := newAuthServiceForTest(t)

	if err := svc.EnsureDefaultAdmin(); err != nil {
		t.Fatalf("EnsureDefaultAdmin: %v", err)
	}
	if err := svc.EnsureDefaultAdmin(); err != nil {
		t.Fatalf("second EnsureDefaultAdmin: %v", err)
	}

	users, err := svc.GetUsers()
	if err != nil {
		t.Fatalf("GetUsers: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("user count = %d, want 1", len(users))
	}
	if users[0].Username != "admin" || users[0].Role != models.RoleAdmin {
		t.Errorf("seeded user = %s/%s, want admin/admin", users[0].Username, users[0].Role)
	}

	if _, err := svc.LoginUser(models.Credentials{Username: "admin", Password: "admin123"}); err != nil {
		t.Errorf("login as seeded admin: %v", err)
	}
}

func TestUpdateUserRole(t *testing.T) {
	svc := newAuthServiceForTest(t)

	user, err := svc.RegisterUser(models.RegistrationPayload{Username: "gulnara", Password: "secret99"})
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}

	if err := svc.UpdateUserRole(user.ID, models.RoleAdmin); err != nil {
		t.Fatalf("UpdateUserRole: %v", err)
	}
	updated, err := svc.GetUserProfile(user.ID)
	if err != nil {
		t.Fatalf("GetUserProfile: %v", err)
	}
	if updated.Role != models.RoleAdmin {
		t.Errorf("role = %q, want admin", updated.Role)
	}

	if err := svc.UpdateUserRole(user.ID, "janitor"); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("bad role: err = %v, want ErrInvalidRole", err)
	}
	if err := svc.DeleteUser(user.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := svc.GetUserProfile(user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("deleted user lookup: err = %v, want ErrUserNotFound", err)
	}
}
