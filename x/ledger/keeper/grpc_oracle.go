package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// GRPCOracle reads balances from a live chain through the bank query
// service. It never writes.
type GRPCOracle struct {
	conn   *grpc.ClientConn
	client banktypes.QueryClient
}

// DialGRPCOracle connects to the gRPC endpoint of a node.
func DialGRPCOracle(ctx context.Context, target string) (*GRPCOracle, error) {
	conn, err := grpc.DialContext(ctx, target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, errorsmod.Wrapf(err, "dial %s", target)
	}
	return NewGRPCOracle(conn), nil
}

func NewGRPCOracle(conn *grpc.ClientConn) *GRPCOracle {
	return &GRPCOracle{conn: conn, client: banktypes.NewQueryClient(conn)}
}

func (o *GRPCOracle) Balance(ctx context.Context, address, denom string) (math.Uint, error) {
	res, err := o.client.Balance(ctx, &banktypes.QueryBalanceRequest{Address: address, Denom: denom})
	if err != nil {
		return math.Uint{}, errorsmod.Wrapf(err, "query balance of %s", address)
	}
	if res.Balance == nil || res.Balance.Amount.IsNil() || res.Balance.Amount.IsNegative() {
		return math.ZeroUint(), nil
	}
	return math.NewUintFromBigInt(res.Balance.Amount.BigInt()), nil
}

func (o *GRPCOracle) Close() error {
	return o.conn.Close()
}
