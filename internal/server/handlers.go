package server

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/theirongolddev/payoff/internal/calc"
	"github.com/theirongolddev/payoff/internal/model"
	"github.com/theirongolddev/payoff/internal/theme"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "ok\n")
}

func (s *Server) handleStatus(c *gin.Context) {
	st, err := s.snapshotStatus(c.Request.Context())
	if err != nil {
		respondWithError(c, s.log, err)
		return
	}
	respondJSON(c, s.log, http.StatusOK, st)
}

func (s *Server) listDebts(c *gin.Context) {
	debts, err := s.ledger.LoadDebts(c.Request.Context())
	if err != nil {
		respondWithError(c, s.log, err)
		return
	}
	respondJSON(c, s.log, http.StatusOK, gin.H{"debts": debts, "summary": calc.Summarize(debts)})
}

func (s *Server) addDebt(c *gin.Context) {
	var req model.NewDebt
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, s.log, withMessage(errInvalidInput, err.Error()))
		return
	}

	debts, err := s.ledger.AddDebt(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, s.log, err)
		return
	}
	added := debts[len(debts)-1]
	s.publish(EventDebtAdded, added.ID, calc.Summarize(debts))
	respondJSON(c, s.log, http.StatusCreated, gin.H{"debt": added})
}

func (s *Server) updateDebt(c *gin.Context) {
	var patch model.DebtPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondWithError(c, s.log, withMessage(errInvalidInput, err.Error()))
		return
	}
	if patch.IsEmpty() {
		respondWithError(c, s.log, withMessage(errInvalidInput, "no fields to update"))
		return
	}

	id := c.Param("id")
	debts, err := s.ledger.UpdateDebt(c.Request.Context(), id, patch)
	if err != nil {
		respondWithError(c, s.log, err)
		return
	}
	d, ok := findDebt(debts, id)
	if !ok {
		respondWithError(c, s.log, errDebtNotFound)
		return
	}
	s.publish(EventDebtUpdated, id, calc.Summarize(debts))
	respondJSON(c, s.log, http.StatusOK, gin.H{"debt": d})
}

func (s *Server) deleteDebt(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if _, err := s.lookupDebt(c, id); err != nil {
		respondWithError(c, s.log, err)
		return
	}
	debts, err := s.ledger.DeleteDebt(ctx, id)
	if err != nil {
		respondWithError(c, s.log, err)
		return
	}
	s.publish(EventDebtDeleted, id, calc.Summarize(debts))
	c.Status(http.StatusNoContent)
}

// projection is a payoff forecast for one debt at a fixed monthly payment.
type projection struct {
	DebtID        string               `json:"debtId"`
	Payment       float64              `json:"payment"`
	Months        calc.Months          `json:"months"` // -1 when the payment never clears the balance
	Never         bool                 `json:"never"`
	TotalInterest float64              `json:"totalInterest"`
	PayoffDate    *time.Time           `json:"payoffDate,omitempty"`
	Schedule      []calc.ScheduleEntry `json:"schedule"`
}

func (s *Server) debtProjection(c *gin.Context) {
	d, err := s.lookupDebt(c, c.Param("id"))
	if err != nil {
		respondWithError(c, s.log, err)
		return
	}

	payment, err := queryFloat(c, "payment", d.MinPayment)
	if err != nil {
		respondWithError(c, s.log, err)
		return
	}
	limit, err := queryFloat(c, "limit", 0)
	if err != nil {
		respondWithError(c, s.log, err)
		return
	}

	months := calc.MonthsToPayoff(d.Balance, d.Rate, payment)
	p := projection{
		DebtID:        d.ID,
		Payment:       payment,
		Months:        months,
		Never:         months.IsNever(),
		TotalInterest: calc.TotalInterest(d.Balance, d.Rate, payment),
		Schedule:      calc.PayoffSchedule(d.Balance, d.Rate, payment),
	}
	if date, ok := calc.PayoffDate(s.now(), months); ok {
		p.PayoffDate = &date
	}
	if p.Schedule == nil {
		p.Schedule = []calc.ScheduleEntry{}
	}
	if n := int(limit); n > 0 && n < len(p.Schedule) {
		p.Schedule = p.Schedule[:n]
	}
	respondJSON(c, s.log, http.StatusOK, p)
}

func (s *Server) listPayments(c *gin.Context) {
	payments, err := s.ledger.LoadPayments(c.Request.Context())
	if err != nil {
		respondWithError(c, s.log, err)
		return
	}
	if debtID := c.Query("debt"); debtID != "" {
		payments = model.PaymentsFor(payments, debtID)
		if payments == nil {
			payments = []model.Payment{}
		}
	}
	respondJSON(c, s.log, http.StatusOK, gin.H{"payments": payments, "total": model.TotalPaid(payments)})
}

type paymentRequest struct {
	DebtID string     `json:"debtId" binding:"required"`
	Amount float64    `json:"amount" binding:"required"`
	Date   *time.Time `json:"date,omitempty"`
}

func (s *Server) recordPayment(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, s.log, withMessage(errInvalidInput, err.Error()))
		return
	}

	p := model.Payment{DebtID: req.DebtID, Amount: req.Amount}
	if req.Date != nil {
		p.Date = req.Date.UTC()
	}
	snap, err := s.ledger.RecordPayment(c.Request.Context(), p)
	if err != nil {
		respondWithError(c, s.log, err)
		return
	}

	recorded := snap.Payments[len(snap.Payments)-1]
	resp := gin.H{"payment": recorded, "orphan": true}
	if d, ok := findDebt(snap.Debts, req.DebtID); ok {
		resp["debt"] = d
		resp["orphan"] = false
	}
	s.publish(EventPaymentRecorded, recorded.ID, calc.Summarize(snap.Debts))
	respondJSON(c, s.log, http.StatusCreated, resp)
}

type investmentProjection struct {
	MonthlyContribution float64   `json:"monthlyContribution"`
	AnnualReturnPct     float64   `json:"annualReturnPct"`
	Years               float64   `json:"years"`
	FutureValue         float64   `json:"futureValue"`
	Contributed         float64   `json:"contributed"`
	Earnings            float64   `json:"earnings"`
	ByYear              []float64 `json:"byYear"`
}

func (s *Server) investmentProjection(c *gin.Context) {
	in := s.cfg.Invest
	monthly, err := queryFloat(c, "monthly", in.MonthlyContribution)
	if err != nil {
		respondWithError(c, s.log, err)
		return
	}
	ret, err := queryFloat(c, "return", in.AnnualReturnPct)
	if err != nil {
		respondWithError(c, s.log, err)
		return
	}
	years, err := queryFloat(c, "years", in.Years)
	if err != nil {
		respondWithError(c, s.log, err)
		return
	}

	g := calc.InvestmentBreakdown(monthly, ret, years)
	if !g.Finite() {
		respondWithError(c, s.log, withMessage(errInvalidInput, "projection overflows; lower the return or the years"))
		return
	}
	byYear := calc.GrowthByYear(monthly, ret, years)
	if byYear == nil {
		byYear = []float64{}
	}
	respondJSON(c, s.log, http.StatusOK, investmentProjection{
		MonthlyContribution: monthly,
		AnnualReturnPct:     ret,
		Years:               years,
		FutureValue:         g.FutureValue,
		Contributed:         g.Contributed,
		Earnings:            g.Earnings,
		ByYear:              byYear,
	})
}

func (s *Server) getAccount(c *gin.Context) {
	acct := s.prefs.Account()
	respondJSON(c, s.log, http.StatusOK, gin.H{"account": acct, "name": acct.Name()})
}

type accountPatch struct {
	DisplayName        *string `json:"displayName"`
	OnboardingComplete *bool   `json:"onboardingComplete"`
}

func (s *Server) updateAccount(c *gin.Context) {
	var req accountPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, s.log, withMessage(errInvalidInput, err.Error()))
		return
	}
	if req.OnboardingComplete != nil && !*req.OnboardingComplete {
		respondWithError(c, s.log, withMessage(errInvalidInput, "onboarding is only reset by deleting the account"))
		return
	}

	ctx := c.Request.Context()
	acct := s.prefs.Account()
	var err error
	if req.DisplayName != nil {
		if acct, err = s.prefs.SetDisplayName(ctx, *req.DisplayName); err != nil {
			respondWithError(c, s.log, err)
			return
		}
	}
	if req.OnboardingComplete != nil {
		if acct, err = s.prefs.CompleteOnboarding(ctx); err != nil {
			respondWithError(c, s.log, err)
			return
		}
	}
	s.publish(EventAccountUpdated, acct.ID, s.currentSummary(c))
	respondJSON(c, s.log, http.StatusOK, gin.H{"account": acct, "name": acct.Name()})
}

func (s *Server) getTheme(c *gin.Context) {
	t := s.prefs.Theme()
	respondJSON(c, s.log, http.StatusOK, gin.H{"id": t.ID, "label": t.Label, "available": theme.Names()})
}

type themeRequest struct {
	ID string `json:"id" binding:"required"`
}

func (s *Server) setTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, s.log, withMessage(errInvalidInput, err.Error()))
		return
	}
	t, err := s.prefs.SetTheme(c.Request.Context(), req.ID)
	if err != nil {
		respondWithError(c, s.log, err)
		return
	}
	s.publish(EventThemeChanged, t.ID, s.currentSummary(c))
	respondJSON(c, s.log, http.StatusOK, gin.H{"id": t.ID, "label": t.Label, "available": theme.Names()})
}

// clearData removes every debt and payment. With ?account=true the device
// account is deleted too, which sends the next client through onboarding.
func (s *Server) clearData(c *gin.Context) {
	ctx := c.Request.Context()
	if err := s.ledger.ClearAllData(ctx); err != nil {
		respondWithError(c, s.log, err)
		return
	}
	if resetAccount, _ := strconv.ParseBool(c.Query("account")); resetAccount {
		if _, err := s.prefs.DeleteAccount(ctx); err != nil {
			respondWithError(c, s.log, err)
			return
		}
	}
	s.publish(EventDataCleared, "", calc.Summary{})
	c.Status(http.StatusNoContent)
}

func (s *Server) lookupDebt(c *gin.Context, id string) (model.Debt, error) {
	debts, err := s.ledger.LoadDebts(c.Request.Context())
	if err != nil {
		return model.Debt{}, err
	}
	d, ok := findDebt(debts, id)
	if !ok {
		return model.Debt{}, errDebtNotFound
	}
	return d, nil
}

// currentSummary is best effort; events still go out when the read fails.
func (s *Server) currentSummary(c *gin.Context) calc.Summary {
	debts, err := s.ledger.LoadDebts(c.Request.Context())
	if err != nil {
		s.log.Warnw("summary unavailable for event", "error", err)
		return calc.Summary{}
	}
	return calc.Summarize(debts)
}

func findDebt(debts []model.Debt, id string) (model.Debt, bool) {
	for _, d := range debts {
		if d.ID == id {
			return d, true
		}
	}
	return model.Debt{}, false
}

func queryFloat(c *gin.Context, name string, def float64) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, withMessage(errInvalidInput, "invalid "+name+": "+raw)
	}
	return v, nil
}
