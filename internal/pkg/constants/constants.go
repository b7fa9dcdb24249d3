package constants

const (
	ViperHTTPAddr           = "http.addr"
	ViperCORSOrigins        = "http.cors_origins"
	ViperDatabaseURL        = "database.url"
	ViperLogLevel           = "log.level"
	ViperLogMode            = "log.mode"
	ViperDefaultTimezone    = "default_timezone"
	ViperLocale             = "locale"
	ViperOrganismFieldTitle = "organism_field_title"
	ViperSecretKey          = "secret"
	ViperSpeciesSynonyms    = "species_synonyms"
)

const (
	CookieKeySecretToken = "secret_token"
	CtxKeyRequestID      = "request_id"
)

const (
	// DefaultTimezone в минутах, 480 -> UTC+8.
	DefaultTimezone    = 480
	DefaultLocale      = "zh-TW"
	OrganismFieldTitle = "個體 ID"

	SpeciesPageSizeMaximum = 1000
)
