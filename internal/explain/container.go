package explain

type ExplainContainer struct {
	Service Service
	Handler *Handler
}

func NewExplainContainer(model string, credentials CredentialSource) *ExplainContainer {
	provider := NewGeminiProvider(model)
	service := NewService(provider)
	handler := NewHandler(service, credentials)

	return &ExplainContainer{
		Service: service,
		Handler: handler,
	}
}
