package decidir

import "fmt"

// Environment selects which Decidir installation the connector talks to
type Environment int

const (
	// EnvironmentSandbox is the developers sandbox
	EnvironmentSandbox Environment = iota
	// EnvironmentProduction is the live installation
	EnvironmentProduction
	// EnvironmentQA is the acquirer QA installation
	EnvironmentQA
)

const (
	hostSandbox    = "https://developers.decidir.com"
	hostProduction = "https://live.decidir.com"
	hostQA         = "https://qa.decidir.com"

	pathPayments      = "/api/v2/"
	pathValidate      = "/web/"
	pathClosureQA     = "/api/v1/"
	pathInternalToken = "/api/v1/transaction_gateway/"
)

func (e Environment) String() string {
	switch e {
	case EnvironmentSandbox:
		return "sandbox"
	case EnvironmentProduction:
		return "production"
	case EnvironmentQA:
		return "qa"
	default:
		return "unknown"
	}
}

// ParseEnvironment converts "sandbox", "production" or "qa" into an Environment
func ParseEnvironment(s string) (Environment, error) {
	switch s {
	case "sandbox", "":
		return EnvironmentSandbox, nil
	case "production", "prod":
		return EnvironmentProduction, nil
	case "qa":
		return EnvironmentQA, nil
	default:
		return 0, fmt.Errorf("unknown environment %q", s)
	}
}

func (e Environment) host() (string, error) {
	switch e {
	case EnvironmentSandbox:
		return hostSandbox, nil
	case EnvironmentProduction:
		return hostProduction, nil
	case EnvironmentQA:
		return hostQA, nil
	default:
		return "", fmt.Errorf("unknown environment %d", int(e))
	}
}

// endpoints are the base URLs each service builds its paths from
type endpoints struct {
	host          string
	payments      string
	validate      string
	internalToken string
	closure       string
}

func environmentEndpoints(env Environment) (endpoints, error) {
	host, err := env.host()
	if err != nil {
		return endpoints{}, err
	}
	ep := customEndpoints(host, pathPayments)
	if env == EnvironmentQA {
		ep.closure = host + pathClosureQA
	}
	return ep, nil
}

func customEndpoints(host, path string) endpoints {
	payments := host + path
	return endpoints{
		host:          host,
		payments:      payments,
		validate:      host + pathValidate,
		internalToken: host + pathInternalToken,
		closure:       payments,
	}
}
