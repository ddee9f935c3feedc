package statebridge

import (
	"github.com/goliatone/go-errors"
)

const (
	TextCodeNoData         = "subscription_no_data"
	TextCodeMalformedData  = "subscription_malformed_data"
	TextCodeDecodeFailed   = "subscription_decode_failed"
	TextCodeLogIn          = "auth_login_failed"
	TextCodeSignUp         = "auth_signup_failed"
	TextCodeChangePassword = "auth_change_password_failed"
	TextCodeChangeEmail    = "auth_change_email_failed"
	TextCodeResetPassword  = "auth_reset_password_failed"
	TextCodeLogOut         = "auth_logout_failed"
	TextCodeMissingUserID  = "auth_login_missing_user_id"
	TextCodeSignUpNoLogin  = "auth_signup_failed_login"
	TextCodeNoCurrentUser  = "auth_no_current_user"
)

// ErrLogInMissingUserID is returned when the backend reports a successful
// sign-in but no user id.
var ErrLogInMissingUserID = errors.New("sign in returned no user id", errors.CategoryAuth).
	WithTextCode(TextCodeMissingUserID).
	WithCode(errors.CodeUnauthorized)

// ErrSignUpFailedLogIn is returned when account creation succeeds but the
// backend reports neither a user nor an error for the follow-up session.
var ErrSignUpFailedLogIn = errors.New("sign up did not establish a session", errors.CategoryAuth).
	WithTextCode(TextCodeSignUpNoLogin).
	WithCode(errors.CodeUnauthorized)

// ErrCurrentUserNotFound is returned when an operation requires an
// authenticated user and none is present.
var ErrCurrentUserNotFound = errors.New("no current user", errors.CategoryAuth).
	WithTextCode(TextCodeNoCurrentUser).
	WithCode(errors.CodeUnauthorized)

// NewNoDataError reports a snapshot that carried no value. The query
// description is recorded under the "path" metadata key.
func NewNoDataError(path string) *errors.Error {
	return errors.New("snapshot has no data", errors.CategoryNotFound).
		WithTextCode(TextCodeNoData).
		WithCode(errors.CodeNotFound).
		WithMetadata(map[string]any{"path": path})
}

// NewMalformedDataError reports a snapshot whose value is not a key-value
// object.
func NewMalformedDataError(path string) *errors.Error {
	return errors.New("snapshot data is not a key-value object", errors.CategoryBadInput).
		WithTextCode(TextCodeMalformedData).
		WithCode(errors.CodeBadRequest).
		WithMetadata(map[string]any{"path": path})
}

// NewDecodeError wraps a record construction failure for one snapshot.
func NewDecodeError(path string, cause error) *errors.Error {
	return errors.Wrap(cause, errors.CategoryValidation, "failed to decode snapshot record").
		WithTextCode(TextCodeDecodeFailed).
		WithCode(errors.CodeBadRequest).
		WithMetadata(map[string]any{"path": path})
}

// NewLogInError wraps a backend sign-in failure.
func NewLogInError(cause error) *errors.Error {
	return errors.Wrap(cause, errors.CategoryAuth, "log in failed").
		WithTextCode(TextCodeLogIn).
		WithCode(errors.CodeUnauthorized)
}

// NewSignUpError wraps a backend account-creation failure.
func NewSignUpError(cause error) *errors.Error {
	return errors.Wrap(cause, errors.CategoryAuth, "sign up failed").
		WithTextCode(TextCodeSignUp).
		WithCode(errors.CodeUnauthorized)
}

// NewChangePasswordError wraps a backend password-update failure.
func NewChangePasswordError(cause error) *errors.Error {
	return errors.Wrap(cause, errors.CategoryAuth, "change password failed").
		WithTextCode(TextCodeChangePassword).
		WithCode(errors.CodeUnauthorized)
}

// NewChangeEmailError wraps a backend email-update failure.
func NewChangeEmailError(cause error) *errors.Error {
	return errors.Wrap(cause, errors.CategoryAuth, "change email failed").
		WithTextCode(TextCodeChangeEmail).
		WithCode(errors.CodeUnauthorized)
}

// NewResetPasswordError wraps a backend password-reset failure.
func NewResetPasswordError(cause error) *errors.Error {
	return errors.Wrap(cause, errors.CategoryAuth, "reset password failed").
		WithTextCode(TextCodeResetPassword).
		WithCode(errors.CodeUnauthorized)
}

// NewLogOutError wraps a backend sign-out failure.
func NewLogOutError(cause error) *errors.Error {
	return errors.Wrap(cause, errors.CategoryOperation, "log out failed").
		WithTextCode(TextCodeLogOut)
}

// IsNoDataError checks for the missing-snapshot-data error.
func IsNoDataError(err error) bool {
	return textCode(err) == TextCodeNoData
}

// IsMalformedDataError checks for the non-object snapshot value error.
func IsMalformedDataError(err error) bool {
	return textCode(err) == TextCodeMalformedData
}

// IsDecodeError checks for a record construction failure.
func IsDecodeError(err error) bool {
	return textCode(err) == TextCodeDecodeFailed
}

// ErrorPath returns the query description a subscription error was recorded
// against, or "" when the error carries none.
func ErrorPath(err error) string {
	var rich *errors.Error
	if !errors.As(err, &rich) {
		return ""
	}
	if path, ok := rich.Metadata["path"].(string); ok {
		return path
	}
	return ""
}

func textCode(err error) string {
	var rich *errors.Error
	if errors.As(err, &rich) {
		return rich.TextCode
	}
	return ""
}
