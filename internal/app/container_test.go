package app

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"courier-track/internal/config"
	"courier-track/internal/logx"
	"courier-track/internal/metrics"
	"courier-track/internal/notify"
	"courier-track/internal/transport/kafka"
)

type httpServersIn struct {
	dig.In

	Main  *http.Server
	Pprof *http.Server `name:"pprof_server" optional:"true"`
}

func setupHTTPContainerWithCfg(t *testing.T, cfg *config.Config) *dig.Container {
	t.Helper()

	c := dig.New()

	require.NoError(t, c.Provide(func() *config.Config { return cfg }))
	require.NoError(t, c.Provide(logx.Nop))
	require.NoError(t, c.Provide(func() *pgxpool.Pool { return &pgxpool.Pool{} }))

	stub := func(name string) func() prometheus.Counter {
		return func() prometheus.Counter {
			return prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: "stub"})
		}
	}
	require.NoError(t, c.Provide(stub("rate_limit_exceeded_total_unit"), dig.Name("rate_limit_exceeded_total")))
	require.NoError(t, c.Provide(stub("notifications_sent_total_unit"), dig.Name("notifications_sent_total")))
	require.NoError(t, c.Provide(stub("gateway_retries_total_unit"), dig.Name("gateway_retries_total")))

	require.NoError(t, registerNotify(c))
	require.NoError(t, registerDomainServices(c))
	require.NoError(t, registerHTTP(c))

	return c
}

func TestRegisterHTTP_PprofDisabled_ReturnsNilPprofServer(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Port: 8080}
	c := setupHTTPContainerWithCfg(t, cfg)

	err := c.Invoke(func(in httpServersIn) {
		require.NotNil(t, in.Main)
		require.Equal(t, ":8080", in.Main.Addr)
		require.Nil(t, in.Pprof)
	})
	require.NoError(t, err)
}

func TestRegisterHTTP_PprofEnabled_ProvidesPprofServer(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Port:      8080,
		PprofPort: 6060,
		PprofUser: "u",
		PprofPass: "p",
	}
	c := setupHTTPContainerWithCfg(t, cfg)

	err := c.Invoke(func(in httpServersIn) {
		require.NotNil(t, in.Main)
		require.NotNil(t, in.Pprof)
		require.Equal(t, ":6060", in.Pprof.Addr)
		require.NotNil(t, in.Pprof.Handler)
	})
	require.NoError(t, err)
}

func TestProvideMetrics_Success_RegistersAndReturnsCounters(t *testing.T) {
	oldReg := prometheus.DefaultRegisterer
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	t.Cleanup(func() { prometheus.DefaultRegisterer = oldReg })

	out, err := provideMetrics()
	require.NoError(t, err)
	require.NotNil(t, out.RateLimitExceededTotal)
	require.NotNil(t, out.NotificationsSentTotal)
	require.NotNil(t, out.GatewayRetriesTotal)
}

func TestProvideMetrics_AlreadyRegistered_ReturnsExistingCounters(t *testing.T) {
	oldReg := prometheus.DefaultRegisterer
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	t.Cleanup(func() { prometheus.DefaultRegisterer = oldReg })

	existingRL := metrics.NewRateLimitExceededTotal()
	existingSent := metrics.NewNotificationsSentTotal()
	require.NoError(t, reg.Register(existingRL))
	require.NoError(t, reg.Register(existingSent))

	out, err := provideMetrics()
	require.NoError(t, err)
	require.Same(t, existingRL, out.RateLimitExceededTotal)
	require.Same(t, existingSent, out.NotificationsSentTotal)
}

type errRegisterer struct{ err error }

func (e errRegisterer) Register(prometheus.Collector) error  { return e.err }
func (e errRegisterer) MustRegister(...prometheus.Collector) {}
func (e errRegisterer) Unregister(prometheus.Collector) bool { return false }

func TestProvideMetrics_RegisterError(t *testing.T) {
	oldReg := prometheus.DefaultRegisterer
	prometheus.DefaultRegisterer = errRegisterer{err: errors.New("boom")}
	t.Cleanup(func() { prometheus.DefaultRegisterer = oldReg })

	_, err := provideMetrics()
	require.Error(t, err)
	require.Contains(t, err.Error(), "register rate_limit_exceeded_total")
}

func TestNewNotifier_PrefersProducer(t *testing.T) {
	t.Parallel()

	local := notify.NewLocalNotifier(notify.NewMemorySeenStore(), notify.NewLogSink(logx.Nop()), logx.Nop(), nil)

	require.Same(t, local, newNotifier(nil, local).(*notify.LocalNotifier))

	producer := &kafka.Producer{}
	require.Same(t, producer, newNotifier(producer, local).(*kafka.Producer))
}

func TestNewContainerBuilder_Defaults(t *testing.T) {
	t.Parallel()

	b := NewContainerBuilder()
	require.NotNil(t, b.dbConnect)
	require.NotNil(t, b.logFatalf)

	b = b.WithDBConnect(nil).WithLogFatalf(nil)
	require.NotNil(t, b.dbConnect)
	require.NotNil(t, b.logFatalf)
}
