// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/lockstake/lockstake/builtin/solidity"
	"github.com/lockstake/lockstake/builtin/staker/bonus"
	"github.com/lockstake/lockstake/builtin/staker/payout"
	"github.com/lockstake/lockstake/builtin/staker/pool"
	"github.com/lockstake/lockstake/builtin/staker/position"
	"github.com/lockstake/lockstake/builtin/staker/reverts"
	"github.com/lockstake/lockstake/lockstake"
	"github.com/lockstake/lockstake/log"
	"github.com/lockstake/lockstake/state"
)

var logger = log.WithContext("pkg", "staker")

func SetLogger(l log.Logger) {
	logger = l
}

// Token is the value ledger stakes are settled against.
type Token interface {
	BalanceOf(addr lockstake.Address) (*uint256.Int, error)
	Transfer(from, to lockstake.Address, amount *uint256.Int) error
	Burn(from lockstake.Address, amount *uint256.Int) error
}

// Authority decides who may change pool parameters.
type Authority interface {
	IsAdmin(addr lockstake.Address) (bool, error)
}

// Staker implements the staking ledger. Its address is the custody account holding staked principal.
type Staker struct {
	addr      lockstake.Address
	cfg       *lockstake.Config
	token     Token
	authority Authority

	poolService     *pool.Service
	positionService *position.Service
}

// New create a new instance.
func New(addr lockstake.Address, state *state.State, cfg *lockstake.Config, token Token, authority Authority) *Staker {
	sctx := solidity.NewContext(addr, state)

	return &Staker{
		addr:      addr,
		cfg:       cfg,
		token:     token,
		authority: authority,

		poolService:     pool.New(sctx, cfg.Precision),
		positionService: position.New(sctx),
	}
}

// Estimate is the settlement closing a stake would produce.
// Settlement is nil when closing now would abort, which is the case on the pooled day.
type Estimate struct {
	*payout.Settlement
	Index      uint64
	ServedDays uint64
	Status     position.StakeStatus
}

//
// Getters - no state change
//

// Address returns the custody account.
func (s *Staker) Address() lockstake.Address {
	return s.addr
}

// Config returns the ledger constants.
func (s *Staker) Config() *lockstake.Config {
	return s.cfg
}

// Pool returns the pool as it would be after a refresh at now.
func (s *Staker) Pool(now uint64) (*pool.Pool, error) {
	custody, err := s.token.BalanceOf(s.addr)
	if err != nil {
		return nil, err
	}
	return s.poolService.Project(now, custody)
}

// Position returns the aggregate position of account.
func (s *Staker) Position(account lockstake.Address) (*position.Position, error) {
	return s.positionService.Get(account)
}

// Stakes lists the active stakes of account in slot order.
func (s *Staker) Stakes(account lockstake.Address) ([]*position.Stake, error) {
	return s.positionService.Stakes(account)
}

// Stake returns the active stake with the given id and its current slot.
func (s *Staker) Stake(account lockstake.Address, id uint64) (uint64, *position.Stake, error) {
	index, stake, found, err := s.positionService.FindStake(account, id)
	if err != nil {
		return 0, nil, err
	}
	if !found {
		return 0, nil, reverts.ErrStakeNotFound
	}
	return index, stake, nil
}

// EstimateReturn returns what closing the stake with the given id at now would settle,
// using a projected pool snapshot.
func (s *Staker) EstimateReturn(account lockstake.Address, id uint64, now uint64) (*Estimate, error) {
	index, stake, err := s.Stake(account, id)
	if err != nil {
		return nil, err
	}
	pos, err := s.positionService.Get(account)
	if err != nil {
		return nil, err
	}
	p, err := s.Pool(now)
	if err != nil {
		return nil, err
	}
	currentDay := s.cfg.DayIndex(now)
	settlement, servedDays, err := s.settle(pos, stake, currentDay, p.AccRewardPerShare)
	if err != nil && !errors.Is(err, lockstake.ErrDivisionByZero) {
		return nil, err
	}
	return &Estimate{
		Settlement: settlement,
		Index:      index,
		ServedDays: servedDays,
		Status:     stake.Status(currentDay),
	}, nil
}

//
// Setters - state change
//

// InitializePool starts the emission pool. It can only be done once.
func (s *Staker) InitializePool(admin lockstake.Address, rate *uint256.Int, now uint64) (*EmissionRateChanged, error) {
	if err := s.requireAdmin(admin); err != nil {
		return nil, err
	}
	if err := s.poolService.Initialize(rate, now); err != nil {
		return nil, err
	}
	logger.Info("pool initialized", "rate", rate, "time", now)
	return &EmissionRateChanged{
		Time:    now,
		Admin:   admin,
		OldRate: new(uint256.Int),
		NewRate: rate.Clone(),
	}, nil
}

// SetEmissionRate changes the emission rate. Emission up to now accrues at the old rate.
func (s *Staker) SetEmissionRate(admin lockstake.Address, rate *uint256.Int, now uint64) (*EmissionRateChanged, error) {
	if err := s.requireAdmin(admin); err != nil {
		return nil, err
	}
	current, err := s.poolService.Get()
	if err != nil {
		return nil, err
	}
	if !current.Initialized {
		return nil, reverts.ErrNotInitialized
	}
	p, err := s.refresh(now)
	if err != nil {
		return nil, err
	}
	oldRate := p.RewardsPerSecond.Clone()
	if err := s.poolService.SetRewardsPerSecond(rate); err != nil {
		return nil, err
	}
	logger.Info("emission rate changed", "old", oldRate, "new", rate)
	return &EmissionRateChanged{
		Time:    now,
		Admin:   admin,
		OldRate: oldRate,
		NewRate: rate.Clone(),
	}, nil
}

// Open locks amount of caller for days. The stake joins the pool on the next day.
func (s *Staker) Open(caller lockstake.Address, amount *uint256.Int, days uint64, now uint64) (*StakeOpened, error) {
	if amount == nil || amount.IsZero() {
		return nil, reverts.ErrInvalidAmount
	}
	if days < s.cfg.MinStakeDays || days > s.cfg.MaxStakeDays {
		return nil, reverts.ErrInvalidDuration
	}
	current, err := s.poolService.Get()
	if err != nil {
		return nil, err
	}
	if !current.Initialized {
		return nil, reverts.ErrNotInitialized
	}
	balance, err := s.token.BalanceOf(caller)
	if err != nil {
		return nil, err
	}
	if balance.Lt(amount) {
		return nil, reverts.ErrInsufficientBalance
	}

	shares, err := bonus.Shares(amount, days, s.cfg)
	if err != nil {
		return nil, errors.Wrap(err, "bonus shares")
	}
	// a position without shares cannot be settled once pooled
	if shares.IsZero() {
		return nil, reverts.ErrNoShares
	}

	p, err := s.refresh(now)
	if err != nil {
		return nil, err
	}
	pos, err := s.positionService.Get(caller)
	if err != nil {
		return nil, err
	}
	if pos.RewardDebt, err = pool.Debt(amount, p.AccRewardPerShare, s.cfg.Precision); err != nil {
		return nil, errors.Wrap(err, "reward debt")
	}

	pooledDay := s.cfg.DayIndex(now) + 1
	id, err := s.positionService.AddStake(caller, pos, amount, shares, pooledDay, days)
	if err != nil {
		return nil, err
	}
	if err := s.poolService.AddPooled(amount); err != nil {
		return nil, err
	}

	if err := s.collect(caller, amount); err != nil {
		return nil, err
	}

	logger.Debug("stake opened", "account", caller, "id", id, "amount", amount, "days", days, "shares", shares)
	return &StakeOpened{
		Time:    now,
		Account: caller,
		ID:      id,
		Index:   pos.StakeCount - 1,
		Amount:  amount.Clone(),
		Days:    days,
		Shares:  shares,
	}, nil
}

// collect pulls amount into custody, then burns and forwards the configured fractions of it.
func (s *Staker) collect(from lockstake.Address, amount *uint256.Int) error {
	if err := s.token.Transfer(from, s.addr, amount); err != nil {
		return err
	}
	burn, err := lockstake.MulDiv(amount, uint256.NewInt(*s.cfg.BurnPercent), uint256.NewInt(100))
	if err != nil {
		return err
	}
	if err := s.token.Burn(s.addr, burn); err != nil {
		return err
	}
	forward, err := lockstake.MulDiv(amount, uint256.NewInt(*s.cfg.PoolPercent), uint256.NewInt(100))
	if err != nil {
		return err
	}
	return s.token.Transfer(s.addr, s.cfg.RewardsPool, forward)
}

// Close settles the stake at index, which must carry expectedID, and pays its return to caller.
func (s *Staker) Close(caller lockstake.Address, index, expectedID uint64, now uint64) (*StakeClosed, error) {
	pos, err := s.positionService.Get(caller)
	if err != nil {
		return nil, err
	}
	stake, err := s.positionService.GetStake(caller, index)
	if err != nil {
		return nil, err
	}
	if stake.ID != expectedID {
		return nil, reverts.ErrStaleIndex
	}

	p, err := s.refresh(now)
	if err != nil {
		return nil, err
	}
	currentDay := s.cfg.DayIndex(now)
	status := stake.Status(currentDay)
	if status != position.StatusUnpooled {
		if err := s.poolService.SubPooled(stake.StakedAmount); err != nil {
			return nil, err
		}
	}

	settlement, servedDays, err := s.settle(pos, stake, currentDay, p.AccRewardPerShare)
	if err != nil {
		return nil, err
	}

	remaining, err := lockstake.Sub(pos.TotalAmount, stake.StakedAmount)
	if err != nil {
		return nil, err
	}
	debt, err := pool.Debt(remaining, p.AccRewardPerShare, s.cfg.Precision)
	if err != nil {
		return nil, errors.Wrap(err, "reward debt")
	}
	if status == position.StatusPending {
		// pending emission was not paid out, keep it claimable
		pos.RewardDebt = lockstake.Min(pos.RewardDebt, debt)
	} else {
		pos.RewardDebt = debt
	}

	if !settlement.StakeReturn.IsZero() {
		if err := s.token.Transfer(s.addr, caller, settlement.StakeReturn); err != nil {
			return nil, err
		}
	}
	if err := s.positionService.RemoveStake(caller, pos, index); err != nil {
		return nil, err
	}

	logger.Debug("stake closed",
		"account", caller,
		"id", expectedID,
		"status", status,
		"servedDays", servedDays,
		"returned", settlement.StakeReturn,
		"penalty", settlement.CappedPenalty,
	)
	return &StakeClosed{
		Time:          now,
		Account:       caller,
		ID:            expectedID,
		Payout:        settlement.Payout,
		Penalty:       settlement.Penalty,
		ServedDays:    servedDays,
		Returned:      settlement.StakeReturn,
		CappedPenalty: settlement.CappedPenalty,
	}, nil
}

// Unpool removes a stake whose term is served from the pooled total ahead of its close.
func (s *Staker) Unpool(admin, account lockstake.Address, index, expectedID uint64, now uint64) (*StakeUnpooled, error) {
	if err := s.requireAdmin(admin); err != nil {
		return nil, err
	}
	stake, err := s.positionService.GetStake(account, index)
	if err != nil {
		return nil, err
	}
	if stake.ID != expectedID {
		return nil, reverts.ErrStaleIndex
	}
	currentDay := s.cfg.DayIndex(now)
	switch stake.Status(currentDay) {
	case position.StatusPending:
		return nil, reverts.ErrNotPooled
	case position.StatusUnpooled:
		return nil, reverts.ErrAlreadyUnpooled
	}
	if currentDay < stake.EndDay() {
		return nil, reverts.ErrTermNotServed
	}

	if _, err := s.refresh(now); err != nil {
		return nil, err
	}
	stake.UnpooledDay = currentDay
	if err := s.positionService.UpdateStake(account, index, stake); err != nil {
		return nil, err
	}
	if err := s.poolService.SubPooled(stake.StakedAmount); err != nil {
		return nil, err
	}

	logger.Debug("stake unpooled", "account", account, "id", expectedID, "day", currentDay)
	return &StakeUnpooled{
		Time:        now,
		Account:     account,
		ID:          expectedID,
		Amount:      stake.StakedAmount.Clone(),
		UnpooledDay: currentDay,
	}, nil
}

func (s *Staker) requireAdmin(addr lockstake.Address) error {
	ok, err := s.authority.IsAdmin(addr)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.ErrUnauthorized
	}
	return nil
}

func (s *Staker) refresh(now uint64) (*pool.Pool, error) {
	custody, err := s.token.BalanceOf(s.addr)
	if err != nil {
		return nil, err
	}
	return s.poolService.Refresh(now, custody)
}

// settle computes the settlement of stake on currentDay against pos, the owning position
// before removal.
func (s *Staker) settle(
	pos *position.Position,
	stake *position.Stake,
	currentDay uint64,
	acc *uint256.Int,
) (*payout.Settlement, uint64, error) {
	var servedDays uint64
	switch stake.Status(currentDay) {
	case position.StatusPending:
		return &payout.Settlement{
			StakeReturn:   stake.StakedAmount.Clone(),
			Payout:        new(uint256.Int),
			Penalty:       new(uint256.Int),
			CappedPenalty: new(uint256.Int),
		}, 0, nil
	case position.StatusUnpooled:
		servedDays = stake.StakedDays
	default:
		servedDays = min(currentDay-stake.PooledDay, stake.StakedDays)
	}

	settlement, err := payout.CalcStakeReturn(pos, stake, servedDays, acc, s.cfg.Precision)
	if err != nil {
		return nil, 0, errors.Wrap(err, "settle stake")
	}
	return settlement, servedDays, nil
}
