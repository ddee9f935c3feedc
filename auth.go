package statebridge

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-print"
)

// AuthBridge converts authentication requests into backend calls and
// translates their asynchronous outcomes into store actions. Every failure
// path ends in exactly one dispatched action; nothing is raised back to the
// caller of a producer.
type AuthBridge struct {
	client AuthClient
	logger Logger
	debug  bool
}

// NewAuthBridge returns a bridge over the given backend auth capability.
func NewAuthBridge(client AuthClient) *AuthBridge {
	return &AuthBridge{
		client: client,
		logger: defLogger{},
	}
}

func (a *AuthBridge) WithLogger(logger Logger) *AuthBridge {
	a.logger = logger
	return a
}

// WithDebug enables dispatch tracing through the bridge logger.
func (a *AuthBridge) WithDebug(debug bool) *AuthBridge {
	a.debug = debug
	return a
}

type credentials struct {
	Email    string
	Password string
}

// Validate will run validation rules
func (c credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required, is.Email),
		validation.Field(&c.Password, validation.Required),
	)
}

// LogIn returns a producer that signs in with the backend and dispatches
// UserLoggedIn on success. A success report without a user id dispatches
// UserAuthFailed(ErrLogInMissingUserID).
func (a *AuthBridge) LogIn(email, password string) ActionProducer {
	return func(_ State, dispatch Dispatch) Action {
		dispatch = a.trace(dispatch)
		if err := (credentials{Email: email, Password: password}).Validate(); err != nil {
			dispatch(UserAuthFailed{Err: NewLogInError(err)})
			return nil
		}

		a.client.SignIn(email, password, func(user UserHandle, err error) {
			switch {
			case err != nil:
				a.logger.Error("sign in failed", "error", err)
				dispatch(UserAuthFailed{Err: NewLogInError(err)})
			case user == nil || user.ID() == "":
				dispatch(UserAuthFailed{Err: ErrLogInMissingUserID})
			default:
				dispatch(UserLoggedIn{UserID: user.ID()})
			}
		})

		return nil
	}
}

// SignUp returns a producer that creates the account and, on success,
// dispatches UserAuthEvent(SignedUp) followed by UserLoggedIn for the new
// session. The no-user-no-error branch is kept for backends that report
// creation without establishing a session.
func (a *AuthBridge) SignUp(email, password string) ActionProducer {
	return func(_ State, dispatch Dispatch) Action {
		dispatch = a.trace(dispatch)
		if err := (credentials{Email: email, Password: password}).Validate(); err != nil {
			dispatch(UserAuthFailed{Err: NewSignUpError(err)})
			return nil
		}

		a.client.CreateUser(email, password, func(user UserHandle, err error) {
			switch {
			case err != nil:
				a.logger.Error("sign up failed", "error", err)
				dispatch(UserAuthFailed{Err: NewSignUpError(err)})
			case user == nil || user.ID() == "":
				dispatch(UserAuthFailed{Err: ErrSignUpFailedLogIn})
			default:
				dispatch(UserAuthEvent{Event: SignedUp})
				dispatch(UserLoggedIn{UserID: user.ID()})
			}
		})

		return nil
	}
}

// ChangePassword returns a producer that updates the current user's
// password. With no current user it dispatches
// UserAuthFailed(ErrCurrentUserNotFound) without calling the backend.
func (a *AuthBridge) ChangePassword(newPassword string) ActionProducer {
	return func(_ State, dispatch Dispatch) Action {
		dispatch = a.trace(dispatch)
		if err := validation.Validate(newPassword, validation.Required); err != nil {
			dispatch(UserAuthFailed{Err: NewChangePasswordError(err)})
			return nil
		}

		user := a.client.CurrentUser()
		if user == nil {
			dispatch(UserAuthFailed{Err: ErrCurrentUserNotFound})
			return nil
		}

		user.UpdatePassword(newPassword, func(err error) {
			if err != nil {
				dispatch(UserAuthFailed{Err: NewChangePasswordError(err)})
				return
			}
			dispatch(UserAuthEvent{Event: PasswordChanged})
		})

		return nil
	}
}

// ChangeEmail returns a producer that updates the current user's email, with
// the same current-user precondition as ChangePassword.
func (a *AuthBridge) ChangeEmail(newEmail string) ActionProducer {
	return func(_ State, dispatch Dispatch) Action {
		dispatch = a.trace(dispatch)
		if err := validation.Validate(newEmail, validation.Required, is.Email); err != nil {
			dispatch(UserAuthFailed{Err: NewChangeEmailError(err)})
			return nil
		}

		user := a.client.CurrentUser()
		if user == nil {
			dispatch(UserAuthFailed{Err: ErrCurrentUserNotFound})
			return nil
		}

		user.UpdateEmail(newEmail, func(err error) {
			if err != nil {
				dispatch(UserAuthFailed{Err: NewChangeEmailError(err)})
				return
			}
			dispatch(UserAuthEvent{Event: EmailChanged})
		})

		return nil
	}
}

// ResetPassword returns a producer that asks the backend to send a password
// reset for the given email.
func (a *AuthBridge) ResetPassword(email string) ActionProducer {
	return func(_ State, dispatch Dispatch) Action {
		dispatch = a.trace(dispatch)
		if err := validation.Validate(email, validation.Required, is.Email); err != nil {
			dispatch(UserAuthFailed{Err: NewResetPasswordError(err)})
			return nil
		}

		a.client.SendPasswordReset(email, func(err error) {
			if err != nil {
				dispatch(UserAuthFailed{Err: NewResetPasswordError(err)})
				return
			}
			dispatch(UserAuthEvent{Event: PasswordReset})
		})

		return nil
	}
}

// LogOut returns a producer that signs out of the backend session.
func (a *AuthBridge) LogOut() ActionProducer {
	return func(_ State, dispatch Dispatch) Action {
		dispatch = a.trace(dispatch)
		if err := a.client.SignOut(); err != nil {
			a.logger.Error("sign out failed", "error", err)
			dispatch(UserAuthFailed{Err: NewLogOutError(err)})
			return nil
		}

		dispatch(UserLoggedOut{})
		return nil
	}
}

// UserID reports the currently authenticated user's id, if any. Synchronous
// query; nothing is dispatched.
func (a *AuthBridge) UserID() (string, bool) {
	user := a.client.CurrentUser()
	if user == nil {
		return "", false
	}
	return user.ID(), true
}

func (a *AuthBridge) trace(dispatch Dispatch) Dispatch {
	if !a.debug {
		return dispatch
	}
	logger := a.logger
	return func(action Action) {
		logger.Debug("dispatch %s %s", action.Type(), print.MaybePrettyJSON(action))
		dispatch(action)
	}
}
