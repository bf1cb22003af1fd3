package execution

import (
	"encoding/json"
	"fmt"

	"github.com/software-mansion/casm-test-runner/runner"
)

// BackendConfigInterface describes the configuration of one execution backend: a provider able to construct the
// runner.CaseExecutor that performs the actual single-shot CASM runs.
type BackendConfigInterface interface {
	// Backend returns the unique identifier this backend is registered under.
	Backend() string

	// NewExecutor constructs the executor described by this configuration. Returns an error if the
	// configuration is incomplete or the backend's prerequisites are not met.
	NewExecutor(params *runner.RunnerParams) (runner.CaseExecutor, error)
}

// ExecutionConfig is the generic, serializable wrapper around one backend's configuration. The inner
// BackendConfig is kept as a raw message so that many backend config types can be serialized/deserialized to
// their appropriate types and supported generally.
type ExecutionConfig struct {
	Backend       string           `json:"backend"`
	BackendConfig *json.RawMessage `json:"backendConfig"`
}

// defaultBackendConfigGenerator is a mapping of backend identifier to generator functions which can be used to
// create a default configuration for the given backend. Each backend which provides a generator in this mapping
// is considered a supported execution backend. Items are populated in the init method.
var defaultBackendConfigGenerator map[string]func() BackendConfigInterface

// init is called once per inclusion of a package. This method is used on startup to populate
// defaultBackendConfigGenerator and add supported backends.
func init() {
	// Define a list of default backend config generators
	generators := []func() BackendConfigInterface{
		func() BackendConfigInterface { return NewSubprocessBackendConfig("casm-run") },
	}

	// Initialize our backend config generator.
	defaultBackendConfigGenerator = make(map[string]func() BackendConfigInterface)

	// Generate each type of interface to create a mapping for their backend identifiers.
	for _, generator := range generators {
		backendConfig := generator()
		backendId := backendConfig.Backend()

		// If this backend already exists in our mapping, panic. Each backend should have a unique identifier.
		if _, backendIdExists := defaultBackendConfigGenerator[backendId]; backendIdExists {
			panic(fmt.Errorf("the execution backend '%s' is registered with more than one provider", backendId))
		}

		// Add this entry to our mapping
		defaultBackendConfigGenerator[backendId] = generator
	}
}

// GetSupportedExecutionBackends obtains a list of strings which represent backend identifiers supported by
// methods in this package.
func GetSupportedExecutionBackends() []string {
	backendIds := make([]string, len(defaultBackendConfigGenerator))
	i := 0
	for k := range defaultBackendConfigGenerator {
		backendIds[i] = k
		i++
	}
	return backendIds
}

// IsSupportedExecutionBackend returns a boolean status indicating if a backend identifier is supported within
// this package.
func IsSupportedExecutionBackend(backend string) bool {
	_, ok := defaultBackendConfigGenerator[backend]
	return ok
}

// GetExecutionConfigFromBackendConfig takes a BackendConfigInterface and wraps it in a generic ExecutionConfig.
func GetExecutionConfigFromBackendConfig(backendConfig BackendConfigInterface) (*ExecutionConfig, error) {
	// Marshal our config to a raw message
	b, err := json.Marshal(backendConfig)
	if err != nil {
		return nil, err
	}
	backendConfigMsg := (*json.RawMessage)(&b)

	return &ExecutionConfig{Backend: backendConfig.Backend(), BackendConfig: backendConfigMsg}, nil
}

// GetDefaultExecutionConfig returns an ExecutionConfig with default values for a given backend identifier. If an
// error occurs, it is returned instead.
func GetDefaultExecutionConfig(backend string) (*ExecutionConfig, error) {
	// Verify the backend is valid
	if !IsSupportedExecutionBackend(backend) {
		return nil, fmt.Errorf("could not get default execution config: backend '%s' is unsupported", backend)
	}

	backendConfig := defaultBackendConfigGenerator[backend]()
	return GetExecutionConfigFromBackendConfig(backendConfig)
}

// NewExecutor takes a generic ExecutionConfig and deserializes the inner BackendConfigInterface, which is then
// used to construct the runner.CaseExecutor for the configured backend.
func NewExecutor(config ExecutionConfig, params *runner.RunnerParams) (runner.CaseExecutor, error) {
	// Verify the backend is valid
	if !IsSupportedExecutionBackend(config.Backend) {
		return nil, fmt.Errorf("could not create an executor: backend '%s' is unsupported", config.Backend)
	}

	// Allocate a backend config given our backend string in our execution config.
	// It is necessary to do so as json.Unmarshal needs a concrete structure to populate.
	backendConfig := defaultBackendConfigGenerator[config.Backend]()
	if config.BackendConfig != nil {
		if err := json.Unmarshal(*config.BackendConfig, &backendConfig); err != nil {
			return nil, err
		}
	}

	return backendConfig.NewExecutor(params)
}
