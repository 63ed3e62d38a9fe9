// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger hosts the staking ledger over a key-value store.
//
// Mutating operations are serialised. Each one runs against a fresh journaled state and
// its changes are committed in a single batch only when it succeeds, so a failed
// operation leaves balances, positions and the pool untouched.
package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/holiman/uint256"
	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"

	"github.com/lockstake/lockstake/builtin"
	"github.com/lockstake/lockstake/builtin/staker"
	"github.com/lockstake/lockstake/builtin/staker/pool"
	"github.com/lockstake/lockstake/builtin/staker/position"
	"github.com/lockstake/lockstake/builtin/staker/reverts"
	"github.com/lockstake/lockstake/genesis"
	"github.com/lockstake/lockstake/kv"
	"github.com/lockstake/lockstake/lockstake"
	"github.com/lockstake/lockstake/log"
	"github.com/lockstake/lockstake/logdb"
	"github.com/lockstake/lockstake/state"
)

var logger = log.WithContext("pkg", "ledger")

const (
	stateStoreName = kv.Bucket("s")
	metaStoreName  = kv.Bucket("m")
)

var genesisKey = []byte("genesis")

// ErrGenesisMismatch is returned when the store was created from another genesis.
var ErrGenesisMismatch = errors.New("genesis mismatch")

// Opt configures a Ledger.
type Opt func(*Ledger)

// WithClock sets the time source, the real clock by default.
func WithClock(clock clockwork.Clock) Opt {
	return func(l *Ledger) {
		l.clock = clock
	}
}

// WithLogDB indexes committed events into db.
func WithLogDB(db *logdb.LogDB) Opt {
	return func(l *Ledger) {
		l.logDB = db
	}
}

// WithFeedCapacity sets how many recent events the feed retains.
func WithFeedCapacity(n int) Opt {
	return func(l *Ledger) {
		l.feed = newFeed(n)
	}
}

type Ledger struct {
	lock      sync.RWMutex
	stater    *state.Stater
	meta      kv.Store
	cfg       *lockstake.Config
	genesisID lockstake.Bytes32
	clock     clockwork.Clock
	logDB     *logdb.LogDB
	feed      *Feed
}

// New opens the ledger in store, building gen first when the store is empty.
func New(store kv.Store, gen *genesis.Genesis, opts ...Opt) (*Ledger, error) {
	l := &Ledger{
		stater:    state.NewStater(stateStoreName.NewStore(store)),
		meta:      metaStoreName.NewStore(store),
		cfg:       gen.Config(),
		genesisID: gen.ID(),
		clock:     clockwork.NewRealClock(),
		feed:      newFeed(defaultFeedCapacity),
	}
	for _, opt := range opts {
		opt(l)
	}

	stored, err := l.meta.Get(genesisKey)
	switch {
	case err == nil:
		if lockstake.BytesToBytes32(stored) != gen.ID() {
			return nil, errors.Wrapf(ErrGenesisMismatch, "want %v, stored %v", gen.ID(), lockstake.BytesToBytes32(stored))
		}
	case l.meta.IsNotFound(err):
		if err := gen.Build(l.stater); err != nil {
			return nil, errors.Wrap(err, "build genesis")
		}
		if err := l.meta.Put(genesisKey, gen.ID().Bytes()); err != nil {
			return nil, err
		}
		logger.Info("genesis built", "name", gen.Name(), "id", gen.ID())
	default:
		return nil, err
	}
	return l, nil
}

// Config returns the ledger constants.
func (l *Ledger) Config() *lockstake.Config {
	return l.cfg.Copy()
}

// GenesisID returns the id of the genesis the ledger was built from.
func (l *Ledger) GenesisID() lockstake.Bytes32 {
	return l.genesisID
}

// Feed returns the feed of committed events.
func (l *Ledger) Feed() *Feed {
	return l.feed
}

// Now returns the current ledger time in unix seconds.
func (l *Ledger) Now() uint64 {
	return uint64(l.clock.Now().Unix())
}

func (l *Ledger) stakerWith(st *state.State) *staker.Staker {
	return builtin.Staker.WithState(st, l.cfg)
}

// execute runs op against a fresh state and commits it on success.
func execute[E staker.Event](ctx context.Context, l *Ledger, name string, op func(s *staker.Staker, now uint64) (E, error)) (E, error) {
	var zero E

	l.lock.Lock()
	defer l.lock.Unlock()

	start := l.clock.Now()
	defer func() {
		metricOpDuration().ObserveWithLabels(l.clock.Since(start).Microseconds(), map[string]string{"op": name})
	}()

	st := l.stater.NewState()
	checkpoint := st.NewCheckpoint()
	s := l.stakerWith(st)

	ev, err := op(s, uint64(start.Unix()))
	if err != nil {
		st.RevertTo(checkpoint)
		outcome := "error"
		if reverts.IsRevertErr(err) {
			outcome = "revert"
		} else {
			logger.Warn("operation failed", "op", name, "err", err)
		}
		metricOpCounter().AddWithLabel(1, map[string]string{"op": name, "outcome": outcome})
		return zero, err
	}

	if err := st.Stage().Commit(); err != nil {
		metricOpCounter().AddWithLabel(1, map[string]string{"op": name, "outcome": "error"})
		return zero, errors.Wrap(err, "commit")
	}
	metricOpCounter().AddWithLabel(1, map[string]string{"op": name, "outcome": "ok"})

	l.observePool(s, uint64(start.Unix()))
	l.publish(ctx, ev)
	return ev, nil
}

func (l *Ledger) observePool(s *staker.Staker, now uint64) {
	p, err := s.Pool(now)
	if err != nil {
		return
	}
	metricPoolGauge().SetWithLabel(gaugeValue(p.TotalPooled), map[string]string{"field": "total_pooled"})
	metricPoolGauge().SetWithLabel(gaugeValue(p.RewardsPerSecond), map[string]string{"field": "rewards_per_second"})
}

// publish indexes ev and hands it to the feed. Indexing failures do not undo the committed operation.
func (l *Ledger) publish(ctx context.Context, ev staker.Event) {
	if l.logDB != nil {
		if err := l.logDB.Insert(ctx, toLogEvent(ev)); err != nil {
			metricLogDBFailures().Add(1)
			logger.Error("failed to index event", "kind", ev.Kind(), "err", err)
		}
	}
	l.feed.append(ev)
}

// Open locks amount of caller for days.
func (l *Ledger) Open(ctx context.Context, caller lockstake.Address, amount *uint256.Int, days uint64) (*staker.StakeOpened, error) {
	return execute(ctx, l, "open", func(s *staker.Staker, now uint64) (*staker.StakeOpened, error) {
		return s.Open(caller, amount, days, now)
	})
}

// Close settles the stake at index, which must carry expectedID.
func (l *Ledger) Close(ctx context.Context, caller lockstake.Address, index, expectedID uint64) (*staker.StakeClosed, error) {
	return execute(ctx, l, "close", func(s *staker.Staker, now uint64) (*staker.StakeClosed, error) {
		return s.Close(caller, index, expectedID, now)
	})
}

// CloseByID resolves the current slot of the stake and closes it in the same operation.
func (l *Ledger) CloseByID(ctx context.Context, caller lockstake.Address, id uint64) (*staker.StakeClosed, error) {
	return execute(ctx, l, "close", func(s *staker.Staker, now uint64) (*staker.StakeClosed, error) {
		index, _, err := s.Stake(caller, id)
		if err != nil {
			return nil, err
		}
		return s.Close(caller, index, id, now)
	})
}

// Unpool removes a served stake of account from the pooled total.
func (l *Ledger) Unpool(ctx context.Context, admin, account lockstake.Address, id uint64) (*staker.StakeUnpooled, error) {
	return execute(ctx, l, "unpool", func(s *staker.Staker, now uint64) (*staker.StakeUnpooled, error) {
		index, _, err := s.Stake(account, id)
		if err != nil {
			return nil, err
		}
		return s.Unpool(admin, account, index, id, now)
	})
}

// SetEmissionRate changes the pool emission rate.
func (l *Ledger) SetEmissionRate(ctx context.Context, admin lockstake.Address, rate *uint256.Int) (*staker.EmissionRateChanged, error) {
	return execute(ctx, l, "set_rate", func(s *staker.Staker, now uint64) (*staker.EmissionRateChanged, error) {
		return s.SetEmissionRate(admin, rate, now)
	})
}

//
// Views - no state change
//

func (l *Ledger) view() (*state.State, uint64, func()) {
	l.lock.RLock()
	return l.stater.NewState(), l.Now(), l.lock.RUnlock
}

// Pool returns the pool projected to now.
func (l *Ledger) Pool() (*pool.Pool, uint64, error) {
	st, now, done := l.view()
	defer done()
	p, err := l.stakerWith(st).Pool(now)
	return p, now, err
}

// Position returns the aggregate position of account.
func (l *Ledger) Position(account lockstake.Address) (*position.Position, error) {
	st, _, done := l.view()
	defer done()
	return l.stakerWith(st).Position(account)
}

// Stakes lists the active stakes of account.
func (l *Ledger) Stakes(account lockstake.Address) ([]*position.Stake, error) {
	st, _, done := l.view()
	defer done()
	return l.stakerWith(st).Stakes(account)
}

// Stake returns the active stake with the given id, its slot and the settlement closing it now would produce.
func (l *Ledger) Stake(account lockstake.Address, id uint64) (*position.Stake, *staker.Estimate, error) {
	st, now, done := l.view()
	defer done()
	s := l.stakerWith(st)
	_, stake, err := s.Stake(account, id)
	if err != nil {
		return nil, nil, err
	}
	est, err := s.EstimateReturn(account, id, now)
	if err != nil {
		return nil, nil, err
	}
	return stake, est, nil
}

// Balance returns the token balance of addr.
func (l *Ledger) Balance(addr lockstake.Address) (*uint256.Int, error) {
	st, _, done := l.view()
	defer done()
	return builtin.Token.WithState(st).BalanceOf(addr)
}

// IsAdmin returns whether addr may change pool parameters.
func (l *Ledger) IsAdmin(addr lockstake.Address) (bool, error) {
	st, _, done := l.view()
	defer done()
	return builtin.Gate.WithState(st).IsAdmin(addr)
}

// FilterEvents queries the event index. It fails when the ledger has no index.
func (l *Ledger) FilterEvents(ctx context.Context, filter *logdb.Filter) ([]*logdb.Event, error) {
	if l.logDB == nil {
		return nil, errors.New("event index disabled")
	}
	return l.logDB.Filter(ctx, filter)
}

// DayOf returns the day index of t.
func (l *Ledger) DayOf(t time.Time) uint64 {
	return l.cfg.DayIndex(uint64(t.Unix()))
}
