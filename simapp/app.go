package simapp

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"cosmossdk.io/core/header"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"

	dbm "github.com/cosmos/cosmos-db"

	ibc "github.com/eclipse-ibc/eclipse-ibc-go/modules/core"
	clienttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/02-client/types"
	connectiontypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/03-connection/types"
	channeltypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/04-channel/types"
	porttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/05-port/types"
	commitmenttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/23-commitment/types"
	ibcerrors "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/errors"
	"github.com/eclipse-ibc/eclipse-ibc-go/modules/core/exported"
	ibckeeper "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/keeper"
	ibctypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/types"
	eclipse "github.com/eclipse-ibc/eclipse-ibc-go/modules/light-clients/xx-eclipse"
	"github.com/eclipse-ibc/eclipse-ibc-go/simapp/store"
	ibcmock "github.com/eclipse-ibc/eclipse-ibc-go/testing/mock"
)

const appName = "EclipseSimApp"

// headerKeyPrefix is the db prefix of the committed block headers. It does not
// collide with the substore prefixes of the commit multistore.
var headerKeyPrefix = []byte("h/")

var _ header.Service = (*SimApp)(nil)

// SimApp is a minimal eclipse host chain: a commit multistore holding the IBC
// substore, the IBC keeper and a history of the headers the chain committed.
// Every message is executed in its own block. A message that fails leaves the
// state untouched and produces no block.
type SimApp struct {
	mtx sync.Mutex

	logger  log.Logger
	chainID string
	db      dbm.DB
	cms     *store.CommitMultiStore

	IBCKeeper *ibckeeper.Keeper
	MockApp   *ibcmock.IBCApp

	// header of the block being executed
	blockHeader header.Info
}

// NewSimApp returns a SimApp persisting its state in db. The chain must be
// initialised with InitChain before messages are delivered, unless db already
// holds a committed chain.
func NewSimApp(logger log.Logger, db dbm.DB, chainID string) (*SimApp, error) {
	logger = logger.With("module", appName, "chain-id", chainID)

	cms, err := store.NewCommitMultiStore(db, logger, exported.StoreKey)
	if err != nil {
		return nil, err
	}

	registry := clienttypes.NewInterfaceRegistry()
	eclipse.RegisterInterfaces(registry)

	app := &SimApp{
		logger:  logger,
		chainID: chainID,
		db:      db,
		cms:     cms,
		MockApp: ibcmock.NewIBCApp(ibcmock.PortID),
	}

	app.IBCKeeper = ibckeeper.NewKeeper(cms.KVStoreService(exported.StoreKey), registry, logger)

	clientKeeper := app.IBCKeeper.ClientKeeper
	clientKeeper.AddRoute(eclipse.ModuleName, eclipse.NewLightClientModule(clientKeeper.GetStoreProvider(), app))

	ibcRouter := porttypes.NewRouter()
	ibcRouter.AddRoute(ibcmock.ModuleName, ibcmock.NewIBCModule(app.MockApp))
	app.IBCKeeper.SetRouter(ibcRouter)

	return app, nil
}

// Logger returns the application logger.
func (app *SimApp) Logger() log.Logger {
	return app.logger
}

// ChainID returns the chain identifier.
func (app *SimApp) ChainID() string {
	return app.chainID
}

// GetIBCKeeper implements the TestingApp interface.
func (app *SimApp) GetIBCKeeper() *ibckeeper.Keeper {
	return app.IBCKeeper
}

// Context returns the context keepers are queried with outside of block execution.
func (*SimApp) Context() context.Context {
	return context.Background()
}

// GetHeaderInfo implements header.Service. It returns the header of the block
// being executed.
func (app *SimApp) GetHeaderInfo(context.Context) header.Info {
	return app.blockHeader
}

// LastBlockHeight returns the height of the latest committed block.
func (app *SimApp) LastBlockHeight() int64 {
	app.mtx.Lock()
	defer app.mtx.Unlock()

	return app.cms.LastCommitID().Version
}

// LastCommitID returns the latest committed version and app hash.
func (app *SimApp) LastCommitID() store.CommitID {
	app.mtx.Lock()
	defer app.mtx.Unlock()

	return app.cms.LastCommitID()
}

// InitChain initialises the IBC state with the genesis identifier sequences
// and commits the first block.
func (app *SimApp) InitChain(genesis ibctypes.GenesisState, blockTime time.Time) (*eclipse.Header, error) {
	app.mtx.Lock()
	defer app.mtx.Unlock()

	if !app.cms.LastCommitID().IsZero() {
		return nil, errorsmod.Wrapf(ErrChainInitialized, "chain %s is at height %d", app.chainID, app.cms.LastCommitID().Version)
	}

	hdr, err := app.executeBlock(blockTime, func(ctx context.Context) error {
		ibc.InitGenesis(ctx, app.IBCKeeper, genesis)
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}

	app.logger.Info("initialized chain", "height", hdr.Height.String())
	return hdr, nil
}

// DeliverMsg executes msg in a new block committed at blockTime. It returns the
// message response and the header of the committed block.
//
// A message that fails leaves the state untouched and no block is committed,
// except when a client update froze its client on misbehaviour: the frozen
// client is committed and the error is still returned.
func (app *SimApp) DeliverMsg(blockTime time.Time, msg ibctypes.Msg) (any, *eclipse.Header, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, nil, err
	}

	app.mtx.Lock()
	defer app.mtx.Unlock()

	if app.cms.LastCommitID().IsZero() {
		return nil, nil, errorsmod.Wrap(ErrChainNotInitialized, app.chainID)
	}

	var res any
	hdr, err := app.executeBlock(blockTime, func(ctx context.Context) error {
		var err error
		res, err = app.handleMsg(ctx, msg)
		return err
	}, func(err error) bool {
		return froze(msg, err)
	})
	if err != nil {
		return nil, hdr, err
	}

	return res, hdr, nil
}

// froze reports whether err is a client update that froze the client on
// misbehaviour.
func froze(msg ibctypes.Msg, err error) bool {
	_, isUpdate := msg.(*clienttypes.MsgUpdateClient)
	return isUpdate && errors.Is(err, clienttypes.ErrClientFrozen)
}

// executeBlock runs fn against the working state and commits it as the next
// block. A failed fn is rolled back unless commitOnErr accepts its error.
func (app *SimApp) executeBlock(
	blockTime time.Time,
	fn func(ctx context.Context) error,
	commitOnErr func(error) bool,
) (hdr *eclipse.Header, err error) {
	lastCommitID := app.cms.LastCommitID()

	if last, found := app.getHeader(lastCommitID.Version); found && !blockTime.After(last.Timestamp) {
		return nil, errorsmod.Wrapf(ErrInvalidBlockTime, "block time %s must be after %s", blockTime, last.Timestamp)
	}

	app.blockHeader = header.Info{
		Height:  lastCommitID.Version + 1,
		Time:    blockTime.UTC(),
		ChainID: app.chainID,
		AppHash: lastCommitID.Hash,
	}

	defer func() {
		if r := recover(); r != nil {
			app.cms.Rollback()
			hdr, err = nil, errorsmod.Wrapf(ibcerrors.ErrLogic, "panic during block execution: %v", r)
		}
	}()

	execErr := fn(context.Background())
	if execErr != nil && (commitOnErr == nil || !commitOnErr(execErr)) {
		app.cms.Rollback()
		return nil, execErr
	}

	commitID, err := app.cms.Commit()
	if err != nil {
		return nil, err
	}

	hdr = eclipse.NewHeader(clienttypes.NewHeight(0, uint64(commitID.Version)), commitID.Hash, app.blockHeader.Time)
	if err := app.setHeader(hdr); err != nil {
		return nil, err
	}

	app.logger.Debug("committed block", "height", commitID.Version, "app-hash", fmt.Sprintf("%X", commitID.Hash))
	return hdr, execErr
}

// Commit commits an empty block at blockTime.
func (app *SimApp) Commit(blockTime time.Time) (*eclipse.Header, error) {
	app.mtx.Lock()
	defer app.mtx.Unlock()

	if app.cms.LastCommitID().IsZero() {
		return nil, errorsmod.Wrap(ErrChainNotInitialized, app.chainID)
	}

	return app.executeBlock(blockTime, func(context.Context) error { return nil }, nil)
}

func (app *SimApp) handleMsg(ctx context.Context, msg ibctypes.Msg) (any, error) {
	switch msg := msg.(type) {
	case *clienttypes.MsgCreateClient:
		return app.IBCKeeper.CreateClient(ctx, msg)
	case *clienttypes.MsgUpdateClient:
		return app.IBCKeeper.UpdateClient(ctx, msg)
	case *connectiontypes.MsgConnectionOpenInit:
		return app.IBCKeeper.ConnectionOpenInit(ctx, msg)
	case *connectiontypes.MsgConnectionOpenTry:
		return app.IBCKeeper.ConnectionOpenTry(ctx, msg)
	case *connectiontypes.MsgConnectionOpenAck:
		return app.IBCKeeper.ConnectionOpenAck(ctx, msg)
	case *connectiontypes.MsgConnectionOpenConfirm:
		return app.IBCKeeper.ConnectionOpenConfirm(ctx, msg)
	case *porttypes.MsgBindPort:
		return app.IBCKeeper.BindPort(ctx, msg)
	case *porttypes.MsgReleasePort:
		return app.IBCKeeper.ReleasePort(ctx, msg)
	case *channeltypes.MsgChannelOpenInit:
		return app.IBCKeeper.ChannelOpenInit(ctx, msg)
	case *channeltypes.MsgChannelOpenTry:
		return app.IBCKeeper.ChannelOpenTry(ctx, msg)
	case *channeltypes.MsgChannelOpenAck:
		return app.IBCKeeper.ChannelOpenAck(ctx, msg)
	case *channeltypes.MsgChannelOpenConfirm:
		return app.IBCKeeper.ChannelOpenConfirm(ctx, msg)
	default:
		return nil, errorsmod.Wrapf(ibcerrors.ErrUnknownRequest, "unrecognized IBC message type: %T", msg)
	}
}

// LastHeader returns the header of the latest committed block.
func (app *SimApp) LastHeader() (*eclipse.Header, error) {
	app.mtx.Lock()
	defer app.mtx.Unlock()

	version := app.cms.LastCommitID().Version
	hdr, found := app.getHeader(version)
	if !found {
		return nil, errorsmod.Wrap(ErrChainNotInitialized, app.chainID)
	}
	return hdr, nil
}

// GetHeader returns the header committed at the given block height.
func (app *SimApp) GetHeader(height int64) (*eclipse.Header, bool) {
	app.mtx.Lock()
	defer app.mtx.Unlock()

	return app.getHeader(height)
}

// QueryProof returns the value stored under key in the IBC store at the given
// block height together with its encoded MerkleProof against the header root
// at that height. A nil value comes with a proof of absence.
func (app *SimApp) QueryProof(key []byte, height int64) ([]byte, []byte, error) {
	app.mtx.Lock()
	defer app.mtx.Unlock()

	value, proofs, err := app.cms.ProveKey(exported.StoreKey, key, height)
	if err != nil {
		return nil, nil, err
	}

	proof, err := commitmenttypes.MerkleProof{Proofs: proofs}.Marshal()
	if err != nil {
		return nil, nil, err
	}

	return value, proof, nil
}

// Close releases the application database.
func (app *SimApp) Close() error {
	return app.db.Close()
}

func (app *SimApp) getHeader(height int64) (*eclipse.Header, bool) {
	if height <= 0 {
		return nil, false
	}

	bz, err := app.db.Get(headerKey(height))
	if err != nil {
		panic(err)
	}
	if len(bz) == 0 {
		return nil, false
	}

	var hdr eclipse.Header
	if err := hdr.Unmarshal(bz); err != nil {
		panic(err)
	}
	return &hdr, true
}

func (app *SimApp) setHeader(hdr *eclipse.Header) error {
	bz, err := hdr.Marshal()
	if err != nil {
		return err
	}
	return app.db.SetSync(headerKey(int64(hdr.Height.RevisionHeight)), bz)
}

func headerKey(height int64) []byte {
	return binary.BigEndian.AppendUint64(append([]byte(nil), headerKeyPrefix...), uint64(height))
}
