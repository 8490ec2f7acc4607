package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/everdragons2/deployer/internal/app"
	"github.com/everdragons2/deployer/internal/config"
	domainconfig "github.com/everdragons2/deployer/internal/domain/config"
	"github.com/everdragons2/deployer/internal/usecase"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFactoryProvider is a mock implementation of usecase.ContractFactoryProvider
type MockFactoryProvider struct {
	mock.Mock
}

func (m *MockFactoryProvider) GetContractFactory(ctx context.Context, name string) (usecase.ContractFactory, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(usecase.ContractFactory), args.Error(1)
}

// MockFactory is a mock implementation of usecase.ContractFactory
type MockFactory struct {
	mock.Mock
}

func (m *MockFactory) Deploy(ctx context.Context) (usecase.PendingDeployment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(usecase.PendingDeployment), args.Error(1)
}

// MockPendingDeployment is a mock implementation of usecase.PendingDeployment
type MockPendingDeployment struct {
	mock.Mock
}

func (m *MockPendingDeployment) Address() string {
	return m.Called().String(0)
}

func (m *MockPendingDeployment) TxHash() string {
	return m.Called().String(0)
}

func (m *MockPendingDeployment) WaitDeployed(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// stubNetworks serves a fixed network list
type stubNetworks struct {
	networks map[string]*domainconfig.Network
	names    []string
}

func (s *stubNetworks) GetNetworks(ctx context.Context) []string {
	return s.names
}

func (s *stubNetworks) ResolveNetwork(ctx context.Context, name string) (*domainconfig.Network, error) {
	network, ok := s.networks[name]
	if !ok {
		return nil, errors.New("unknown network")
	}
	return network, nil
}

type stubChainIDs map[string]uint64

func (s stubChainIDs) ChainID(ctx context.Context, rpcURL string) (uint64, error) {
	chainID, ok := s[rpcURL]
	if !ok {
		return 0, errors.New("connection refused")
	}
	return chainID, nil
}

// testAppFactory wires the real configuration with a mocked toolkit
func testAppFactory(provider usecase.ContractFactoryProvider) AppFactory {
	return func(v *viper.Viper, sink usecase.ProgressSink) (*app.App, error) {
		cfg, err := config.Provider(v)
		if err != nil {
			return nil, err
		}
		networks := &stubNetworks{
			names: []string{"local"},
			networks: map[string]*domainconfig.Network{
				"local": {Name: "local", RPCURL: "http://127.0.0.1:8545"},
			},
		}
		return app.NewApp(
			cfg,
			usecase.NewDeployContract(provider, sink, nil, cfg),
			usecase.NewListNetworks(networks, stubChainIDs{"http://127.0.0.1:8545": 31337}),
		)
	}
}

type runResult struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, provider usecase.ContractFactoryProvider, args ...string) runResult {
	t.Helper()

	cmd := NewRootCmd(WithAppFactory(testAppFactory(provider)))
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--project-root", t.TempDir()}, args...))

	code := Run(cmd)
	return runResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func successfulProvider(address string) (*MockFactoryProvider, *MockPendingDeployment) {
	pending := &MockPendingDeployment{}
	pending.On("Address").Return(address)
	pending.On("TxHash").Return("0x1234")
	pending.On("WaitDeployed", mock.Anything).Return(nil).Once()

	factory := &MockFactory{}
	factory.On("Deploy", mock.Anything).Return(pending, nil).Once()

	provider := &MockFactoryProvider{}
	provider.On("GetContractFactory", mock.Anything, ContractName).Return(factory, nil).Once()
	return provider, pending
}

func TestRoot_DeploySuccess(t *testing.T) {
	provider, pending := successfulProvider("0xABCDEF")

	res := runCLI(t, provider)

	assert.Equal(t, 0, res.code)
	assert.Equal(t, "Deploying contract...\nContract deployed to: 0xABCDEF\n", res.stdout)
	assert.Empty(t, res.stderr)
	provider.AssertExpectations(t)
	pending.AssertExpectations(t)
}

func TestRoot_LookupFailure(t *testing.T) {
	provider := &MockFactoryProvider{}
	provider.On("GetContractFactory", mock.Anything, ContractName).Return(nil, errors.New("artifact not found")).Once()

	res := runCLI(t, provider)

	assert.Equal(t, 1, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "artifact not found")
	assert.Contains(t, res.stderr, "Error: ")
}

func TestRoot_SubmitFailure(t *testing.T) {
	factory := &MockFactory{}
	factory.On("Deploy", mock.Anything).Return(nil, errors.New("insufficient funds for gas")).Once()

	provider := &MockFactoryProvider{}
	provider.On("GetContractFactory", mock.Anything, ContractName).Return(factory, nil).Once()

	res := runCLI(t, provider)

	assert.Equal(t, 1, res.code)
	assert.Equal(t, "Deploying contract...\n", res.stdout)
	assert.Contains(t, res.stderr, "insufficient funds for gas")
	assert.NotContains(t, res.stdout, "Contract deployed to")
	factory.AssertExpectations(t)
}

func TestRoot_ConfirmFailure(t *testing.T) {
	pending := &MockPendingDeployment{}
	pending.On("Address").Return("0xABCDEF").Maybe()
	pending.On("TxHash").Return("0x1234").Maybe()
	pending.On("WaitDeployed", mock.Anything).Return(errors.New("transaction reverted")).Once()

	factory := &MockFactory{}
	factory.On("Deploy", mock.Anything).Return(pending, nil).Once()

	provider := &MockFactoryProvider{}
	provider.On("GetContractFactory", mock.Anything, ContractName).Return(factory, nil).Once()

	res := runCLI(t, provider)

	assert.Equal(t, 1, res.code)
	assert.Equal(t, "Deploying contract...\n", res.stdout)
	assert.Contains(t, res.stderr, "transaction reverted")
	assert.Contains(t, res.stderr, "waiting for confirmation")
}

func TestRoot_IndependentRuns(t *testing.T) {
	first, _ := successfulProvider("0x000000000000000000000000000000000000AAAA")
	second, _ := successfulProvider("0x000000000000000000000000000000000000BBBB")

	res1 := runCLI(t, first)
	res2 := runCLI(t, second)

	assert.Equal(t, 0, res1.code)
	assert.Equal(t, 0, res2.code)
	assert.Contains(t, res1.stdout, "Contract deployed to: 0x000000000000000000000000000000000000AAAA")
	assert.Contains(t, res2.stdout, "Contract deployed to: 0x000000000000000000000000000000000000BBBB")
	assert.NotContains(t, res2.stdout, "AAAA")
	first.AssertExpectations(t)
	second.AssertExpectations(t)
}

func TestRoot_JSONOutput(t *testing.T) {
	provider, _ := successfulProvider("0xABCDEF")

	res := runCLI(t, provider, "--json")
	require.Equal(t, 0, res.code, res.stderr)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &decoded))
	assert.Equal(t, "0xABCDEF", decoded["address"])
	assert.Equal(t, ContractName, decoded["contract"])
	assert.NotContains(t, res.stdout, "Deploying contract...")
}

func TestRoot_RejectsArguments(t *testing.T) {
	provider := &MockFactoryProvider{}

	res := runCLI(t, provider, "SomeOtherContract")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "unknown command")
	provider.AssertNotCalled(t, "GetContractFactory", mock.Anything, mock.Anything)
}

func TestRoot_AppInitFailure(t *testing.T) {
	cmd := NewRootCmd(WithAppFactory(func(v *viper.Viper, sink usecase.ProgressSink) (*app.App, error) {
		return nil, errors.New("network \"nope\" not found")
	}))
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{})

	assert.Equal(t, 1, Run(cmd))
	assert.Contains(t, stderr.String(), "failed to initialize app")
}

func TestNetworksCmd(t *testing.T) {
	res := runCLI(t, &MockFactoryProvider{}, "networks")

	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "local")
	assert.Contains(t, res.stdout, "31337")
}

func TestVersionCmd(t *testing.T) {
	cmd := NewRootCmd(WithAppFactory(func(v *viper.Viper, sink usecase.ProgressSink) (*app.App, error) {
		t.Fatal("version must not initialize the app")
		return nil, nil
	}))
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"version"})

	assert.Equal(t, 0, Run(cmd))
	assert.Equal(t, "deployer version dev\n", stdout.String())
}

// contextPending records the context it is confirmed with. When block is set
// it waits for that context to end.
type contextPending struct {
	block bool
	ctx   context.Context
}

func (p *contextPending) Address() string { return "0xABCDEF" }
func (p *contextPending) TxHash() string  { return "0x1234" }

func (p *contextPending) WaitDeployed(ctx context.Context) error {
	p.ctx = ctx
	if !p.block {
		return nil
	}
	<-ctx.Done()
	return ctx.Err()
}

func providerFor(pending usecase.PendingDeployment) *MockFactoryProvider {
	factory := &MockFactory{}
	factory.On("Deploy", mock.Anything).Return(pending, nil).Once()

	provider := &MockFactoryProvider{}
	provider.On("GetContractFactory", mock.Anything, ContractName).Return(factory, nil).Once()
	return provider
}

func TestRoot_Timeout(t *testing.T) {
	t.Run("expiry fails the confirmation", func(t *testing.T) {
		pending := &contextPending{block: true}

		res := runCLI(t, providerFor(pending), "--timeout", "50ms")

		assert.Equal(t, 1, res.code)
		assert.Equal(t, "Deploying contract...\n", res.stdout)
		assert.Contains(t, res.stderr, "failed while waiting for confirmation")
		assert.Contains(t, res.stderr, context.DeadlineExceeded.Error())
	})

	t.Run("zero applies no deadline", func(t *testing.T) {
		pending := &contextPending{}

		res := runCLI(t, providerFor(pending), "--timeout", "0")

		require.Equal(t, 0, res.code, res.stderr)
		require.NotNil(t, pending.ctx)
		_, hasDeadline := pending.ctx.Deadline()
		assert.False(t, hasDeadline)
	})

	t.Run("default applies a deadline", func(t *testing.T) {
		pending := &contextPending{}

		res := runCLI(t, providerFor(pending))

		require.Equal(t, 0, res.code, res.stderr)
		deadline, hasDeadline := pending.ctx.Deadline()
		require.True(t, hasDeadline)
		assert.WithinDuration(t, time.Now().Add(5*time.Minute), deadline, time.Minute)
	})
}

func TestRun_ReleasesContextOnFailure(t *testing.T) {
	pending := &MockPendingDeployment{}
	pending.On("Address").Return("0xABCDEF").Maybe()
	pending.On("TxHash").Return("0x1234").Maybe()

	var confirmCtx context.Context
	pending.On("WaitDeployed", mock.Anything).Run(func(args mock.Arguments) {
		confirmCtx = args.Get(0).(context.Context)
	}).Return(errors.New("transaction reverted")).Once()

	res := runCLI(t, providerFor(pending), "--timeout", "1h")

	assert.Equal(t, 1, res.code)
	require.NotNil(t, confirmCtx)
	assert.ErrorIs(t, confirmCtx.Err(), context.Canceled)
}

func TestRoot_TerminalOutput(t *testing.T) {
	original := isTerminal
	isTerminal = func(w io.Writer) bool { return true }
	t.Cleanup(func() { isTerminal = original })

	t.Run("colored status lines", func(t *testing.T) {
		provider, _ := successfulProvider("0xABCDEF")

		res := runCLI(t, provider)

		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, "\x1b[36mDeploying contract...")
		assert.Contains(t, res.stdout, "Contract deployed to: \x1b[32;1m0xABCDEF")
	})

	t.Run("non-interactive stays plain", func(t *testing.T) {
		provider, _ := successfulProvider("0xABCDEF")

		res := runCLI(t, provider, "--non-interactive")

		require.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, "Deploying contract...\nContract deployed to: 0xABCDEF\n", res.stdout)
	})

	t.Run("red error", func(t *testing.T) {
		provider := &MockFactoryProvider{}
		provider.On("GetContractFactory", mock.Anything, ContractName).Return(nil, errors.New("artifact not found")).Once()

		res := runCLI(t, provider)

		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "\x1b[31mError: ")
		assert.Contains(t, res.stderr, "artifact not found")
	})
}

func TestPrintError_Plain(t *testing.T) {
	var stderr bytes.Buffer
	printError(&stderr, errors.New("boom"))
	assert.Equal(t, "Error: boom\n", stderr.String())
}
