package common

const (
	// Cache key formats. Market data is keyed by the exact endpoint plus its
	// encoded query string so distinct parameter sets never collide.
	KEY_FMP_RESPONSE = "fmp:%s?%s"
	KEY_AUTH_SESSION = "auth_session:%s"
)

const (
	PROVIDER_GOOGLE = "google"
	PROVIDER_KAKAO  = "kakao"
)

func GetOAuthProviderList() []string {
	return []string{
		PROVIDER_GOOGLE,
		PROVIDER_KAKAO,
	}
}
