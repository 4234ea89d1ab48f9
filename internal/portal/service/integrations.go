package service

// Integration names reported by IntegrationsService.
const (
	IntegrationSupabase       = "supabase"
	IntegrationGoogleCalendar = "google_calendar"
	IntegrationStripe         = "stripe"
	IntegrationOpenAI         = "openai"
	IntegrationRedis          = "redis"
)

// Configurable is anything that knows whether its credentials are set.
type Configurable interface {
	Configured() bool
}

// IntegrationsService reports which third-party integrations this
// deployment has credentials for. It never reveals the credentials.
type IntegrationsService struct {
	Directory Configurable
	Calendar  Configurable

	StripeConfigured bool
	OpenAIConfigured bool
	RedisConfigured  bool
}

func (s *IntegrationsService) Status() map[string]bool {
	return map[string]bool{
		IntegrationSupabase:       configured(s.Directory),
		IntegrationGoogleCalendar: configured(s.Calendar),
		IntegrationStripe:         s.StripeConfigured,
		IntegrationOpenAI:         s.OpenAIConfigured,
		IntegrationRedis:          s.RedisConfigured,
	}
}

func configured(c Configurable) bool {
	return c != nil && c.Configured()
}
