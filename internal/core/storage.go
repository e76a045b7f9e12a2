package core

import (
	"fmt"
	"io"
	"os"

	"missioncontrol/internal/infra/persistence/memory"
	"missioncontrol/internal/platform/config"
	"missioncontrol/internal/validation"
)

// OpenService builds a service and store from cfg. Logs go to logOutput,
// or stderr when nil. Options in opts are applied after the configured
// defaults and may replace them.
//
//	MISSIONCONTROL_INITIAL_CAPACITY: mission slots allocated up front
//	MISSIONCONTROL_COMM_CAPACITY: log slots allocated per mission
//	MISSIONCONTROL_MEMORY_BUDGET_BYTES: allocation ceiling, 0 for none
//	MISSIONCONTROL_STRICT_CALENDAR: reject impossible dates and times
//	MISSIONCONTROL_METRICS_NAMESPACE: Prometheus namespace, used with WithPrometheusRegisterer
func OpenService(cfg config.Config, logOutput io.Writer, opts ...ServiceOption) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logOutput == nil {
		logOutput = os.Stderr
	}
	logger, err := cfg.NewLogger(logOutput)
	if err != nil {
		return nil, err
	}

	var alloc memory.Allocator = memory.UnboundedAllocator{}
	if cfg.MemoryBudgetBytes > 0 {
		alloc = memory.NewBudgetAllocator(cfg.MemoryBudgetBytes)
	}
	base := []ServiceOption{
		WithLogger(logger),
		WithStoreOptions(
			memory.WithAllocator(alloc),
			memory.WithFormatValidator(validation.New(cfg.StrictCalendar)),
			memory.WithLogCapacity(cfg.CommCapacity),
		),
	}
	svc, err := NewInMemoryService(cfg.InitialCapacity, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("open service: %w", err)
	}
	if err := svc.registerPrometheus(cfg.MetricsNamespace); err != nil {
		svc.store.Release()
		return nil, fmt.Errorf("open service: %w", err)
	}
	return svc, nil
}

// OpenServiceFromEnv loads config from the environment and opens a service.
func OpenServiceFromEnv(logOutput io.Writer, opts ...ServiceOption) (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return OpenService(cfg, logOutput, opts...)
}
