package main

import (
	"log"
	"os"

	"github.com/snikch/goodman/hooks"
	"github.com/snikch/goodman/transaction"
)

const (
	endpointVersion     = "/version > GET"
	endpointNodeVersion = "/node_version > GET"
	endpointPolicies    = "/policies > GET"
	endpointPolicy      = "/policies/{recipient} > GET"
	endpointOwner       = "/owner > GET"
	endpointOwnership   = "/ownership > GET"
	endpointBalances    = "/balances/{address} > GET"
	endpointExecute     = "/contracts/{contract}/execute > POST"

	// envRecipient selects the recipient used by the per-policy and balance
	// endpoints. The API description examples are used when unset.
	envRecipient = "GASDIST_TEST_RECIPIENT"
)

type HookManager struct {
	hooks     *hooks.Hooks
	server    *hooks.Server
	logger    *log.Logger
	recipient string
}

func NewHookManager() *HookManager {
	h := hooks.NewHooks()
	return &HookManager{
		hooks:     h,
		server:    hooks.NewServer(hooks.NewHooksRunner(h)),
		logger:    log.New(log.Writer(), "[Dredd Hooks] ", log.LstdFlags),
		recipient: os.Getenv(envRecipient),
	}
}

func (hm *HookManager) registerHooks() {
	hm.registerGlobalHooks()
	hm.registerEndpointSpecificHooks()
}

func (hm *HookManager) registerGlobalHooks() {
	hm.hooks.BeforeAll(func(t []*transaction.Transaction) {
		hm.logger.Printf("running %d transactions", len(t))
	})

	hm.hooks.BeforeEach(func(t *transaction.Transaction) {
		if t.Request != nil && t.Request.Headers != nil {
			t.Request.Headers["Accept"] = "application/json"
		}
	})

	hm.hooks.AfterEach(func(t *transaction.Transaction) {
		hm.logger.Printf("after %s", t.Name)
	})
}

func (hm *HookManager) registerEndpointSpecificHooks() {
	hm.hooks.Before(endpointVersion, func(t *transaction.Transaction) {
		hm.logger.Println("before version TEST")
	})
	hm.hooks.Before(endpointNodeVersion, func(t *transaction.Transaction) {
		hm.logger.Println("before node_version TEST")
	})
	hm.hooks.Before(endpointPolicies, func(t *transaction.Transaction) {
		hm.logger.Println("before policies TEST")
	})
	hm.hooks.Before(endpointOwner, func(t *transaction.Transaction) {
		hm.logger.Println("before owner TEST")
	})
	hm.hooks.Before(endpointOwnership, func(t *transaction.Transaction) {
		hm.logger.Println("before ownership TEST")
	})

	hm.hooks.Before(endpointPolicy, hm.rewriteRecipient("/policies/"))
	hm.hooks.Before(endpointBalances, hm.rewriteRecipient("/balances/"))

	// Executions change state and depend on keys the hooks do not hold.
	hm.hooks.Before(endpointExecute, func(t *transaction.Transaction) {
		t.Skip = true
	})
}

func (hm *HookManager) rewriteRecipient(prefix string) func(*transaction.Transaction) {
	return func(t *transaction.Transaction) {
		if hm.recipient == "" {
			return
		}
		t.FullPath = prefix + hm.recipient
		if t.Request != nil {
			t.Request.URI = t.FullPath
		}
	}
}

func (hm *HookManager) start() error {
	defer hm.server.Listener.Close()

	hm.logger.Println("Starting Dredd hooks server...")
	hm.server.Serve()
	return nil
}

func main() {
	hookManager := NewHookManager()
	hookManager.registerHooks()

	if err := hookManager.start(); err != nil {
		log.Fatalf("Error running hooks server: %v", err)
	}
}
