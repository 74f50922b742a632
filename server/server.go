package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/cometbft/cometbft/libs/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/cosmos/cosmos-sdk/version"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	contracttypes "github.com/baron-chain/gasdistd/x/contract/types"
	gasdisttypes "github.com/baron-chain/gasdistd/x/gasdistributor/types"
	ledgertypes "github.com/baron-chain/gasdistd/x/ledger/types"
)

// Backend is the part of the app served over REST.
type Backend interface {
	ExecuteContract(ctx context.Context, contract, sender string, msg json.RawMessage) (*contracttypes.Response, error)
	QueryContract(ctx context.Context, contract string, msg json.RawMessage) ([]byte, error)
	Balance(ctx context.Context, address, denom string) (math.Uint, error)
	AllBalances(address string) (sdk.Coins, error)
	LastBlock() contracttypes.BlockInfo
}

// ExecuteRequest is the body of POST /contracts/{contract}/execute. Sender is
// not authenticated: the node holds no keys, so any client reaching the API
// can act as any address, the owner included. Keep the API on loopback.
type ExecuteRequest struct {
	Sender string          `json:"sender"`
	Msg    json.RawMessage `json:"msg"`
}

// ErrorResponse is returned with every non 2xx status.
type ErrorResponse struct {
	Codespace string `json:"codespace"`
	Code      uint32 `json:"code"`
	Error     string `json:"error"`
}

// NodeInfo is returned by GET /node_version.
type NodeInfo struct {
	ChainID   string    `json:"chain_id"`
	Height    uint64    `json:"height"`
	BlockTime time.Time `json:"block_time"`
	Version   string    `json:"version"`
}

// Server exposes a Backend over HTTP.
type Server struct {
	backend     Backend
	distributor string
	gatherer    prometheus.Gatherer
	logger      log.Logger
	router      *mux.Router
}

// New builds the router. distributor is the address of the gas distributor
// contract queried by the /policies and /owner routes.
func New(backend Backend, distributor string, gatherer prometheus.Gatherer, logger log.Logger) *Server {
	s := &Server{
		backend:     backend,
		distributor: distributor,
		gatherer:    gatherer,
		logger:      logger.With("module", "server"),
		router:      mux.NewRouter(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	r := s.router
	r.HandleFunc("/version", s.handleVersion).Methods(http.MethodGet)
	r.HandleFunc("/node_version", s.handleNodeVersion).Methods(http.MethodGet)
	r.HandleFunc("/policies", s.handleContractQuery(func(*http.Request) interface{} {
		return gasdisttypes.QueryMsg{Policies: &struct{}{}}
	})).Methods(http.MethodGet)
	r.HandleFunc("/policies/{recipient}", s.handleContractQuery(func(req *http.Request) interface{} {
		return gasdisttypes.QueryMsg{Policy: &gasdisttypes.PolicyQuery{Recipient: mux.Vars(req)["recipient"]}}
	})).Methods(http.MethodGet)
	r.HandleFunc("/owner", s.handleContractQuery(func(*http.Request) interface{} {
		return gasdisttypes.QueryMsg{Owner: &struct{}{}}
	})).Methods(http.MethodGet)
	r.HandleFunc("/ownership", s.handleContractQuery(func(*http.Request) interface{} {
		return gasdisttypes.QueryMsg{Ownership: &struct{}{}}
	})).Methods(http.MethodGet)
	r.HandleFunc("/balances/{address}", s.handleBalances).Methods(http.MethodGet)
	r.HandleFunc("/contracts/{contract}/execute", s.handleExecute).Methods(http.MethodPost)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.router.ServeHTTP(w, req)
}

// ListenAndServe serves until ctx is done. addr may carry a tcp:// scheme.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", strings.TrimPrefix(addr, "tcp://"))
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: s, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving REST", "address", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, version.NewInfo())
}

func (s *Server) handleNodeVersion(w http.ResponseWriter, _ *http.Request) {
	block := s.backend.LastBlock()
	s.writeJSON(w, http.StatusOK, NodeInfo{
		ChainID:   block.ChainID,
		Height:    block.Height,
		BlockTime: block.Time,
		Version:   version.Version,
	})
}

func (s *Server) handleContractQuery(build func(*http.Request) interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		msg, err := json.Marshal(build(req))
		if err != nil {
			s.writeError(w, errorsmod.Wrap(sdkerrors.ErrJSONMarshal, err.Error()))
			return
		}
		bz, err := s.backend.QueryContract(req.Context(), s.distributor, msg)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeRaw(w, http.StatusOK, bz)
	}
}

func (s *Server) handleBalances(w http.ResponseWriter, req *http.Request) {
	address := mux.Vars(req)["address"]
	if denom := req.URL.Query().Get("denom"); denom != "" {
		amount, err := s.backend.Balance(req.Context(), address, denom)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, ledgertypes.Balance{
			Address: address,
			Coins:   sdk.NewCoins(contracttypes.NewCoin(denom, amount)),
		})
		return
	}
	coins, err := s.backend.AllBalances(address)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ledgertypes.Balance{Address: address, Coins: coins})
}

// handleExecute runs a contract call as the sender named in the body. There
// is no signature check.
func (s *Server) handleExecute(w http.ResponseWriter, req *http.Request) {
	var body ExecuteRequest
	dec := json.NewDecoder(req.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		s.writeError(w, errorsmod.Wrap(sdkerrors.ErrJSONUnmarshal, err.Error()))
		return
	}
	resp, err := s.backend.ExecuteContract(req.Context(), mux.Vars(req)["contract"], body.Sender, body.Msg)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	bz, err := json.Marshal(v)
	if err != nil {
		s.writeError(w, errorsmod.Wrap(sdkerrors.ErrJSONMarshal, err.Error()))
		return
	}
	s.writeRaw(w, status, bz)
}

func (s *Server) writeRaw(w http.ResponseWriter, status int, bz []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(bz); err != nil {
		s.logger.Error("failed to write response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	codespace, code, msg := errorsmod.ABCIInfo(err, false)
	bz, _ := json.Marshal(ErrorResponse{Codespace: codespace, Code: code, Error: msg})
	s.writeRaw(w, httpStatus(err), bz)
}

// httpStatus maps registered errors onto HTTP status codes.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, gasdisttypes.ErrUnknownTarget), errors.Is(err, sdkerrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, sdkerrors.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, gasdisttypes.ErrInsufficientFunds), errors.Is(err, ledgertypes.ErrInsufficientFunds):
		return http.StatusConflict
	case errors.Is(err, sdkerrors.ErrTxTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		if codespace, code, _ := errorsmod.ABCIInfo(err, false); codespace == errorsmod.UndefinedCodespace || code == 1 {
			return http.StatusInternalServerError
		}
		return http.StatusBadRequest
	}
}
