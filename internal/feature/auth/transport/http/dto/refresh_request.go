package dto

// RefreshReq represents the request for token refresh.
type RefreshReq struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshRes represents the response for a successful token refresh.
// Only a new access token is issued; the refresh token is not rotated.
type RefreshRes struct {
	AccessToken string `json:"accessToken"`
}
