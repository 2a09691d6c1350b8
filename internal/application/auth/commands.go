package auth

// LoginCommand carries an OAuth authorization code exchange request.
type LoginCommand struct {
	Code        string
	RedirectURI string
}

// CommandName returns the command name.
func (c LoginCommand) CommandName() string { return "Login" }

// LogoutCommand revokes a refresh token, ending the session it backs.
type LogoutCommand struct {
	RefreshToken string
}

// CommandName returns the command name.
func (c LogoutCommand) CommandName() string { return "Logout" }

// RefreshTokenCommand rotates an access token using a refresh token.
type RefreshTokenCommand struct {
	RefreshToken string
}

// CommandName returns the command name.
func (c RefreshTokenCommand) CommandName() string { return "RefreshToken" }
