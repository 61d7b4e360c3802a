package restapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hub_balance/internal/app/chain"
	"hub_balance/internal/app/port"
	"hub_balance/internal/domain/entity"
	huberrors "hub_balance/internal/pkg/errors"
	"hub_balance/internal/pkg/ss58"
)

// Handler serves the /api/v1 routes.
type Handler struct {
	registry chain.Registry
	balances port.BalanceService
	accounts port.AccountStore
	logger   *zap.Logger
}

// NewHandler creates a new instance of Handler.
func NewHandler(registry chain.Registry, balances port.BalanceService, accounts port.AccountStore, logger *zap.Logger) *Handler {
	return &Handler{
		registry: registry,
		balances: balances,
		accounts: accounts,
		logger:   logger.Named("RestAPI"),
	}
}

type chainsResponse struct {
	Status chain.Status `json:"status"`
	Data   []ChainDTO   `json:"data"`
}

// GetChains lists the connected chains.
func (h *Handler) GetChains(c *gin.Context) {
	resp := chainsResponse{Status: h.registry.Status(), Data: []ChainDTO{}}
	for _, id := range h.registry.Chains() {
		if ch, ok := h.registry.Get(id); ok {
			resp.Data = append(resp.Data, toChainDTO(ch))
		}
	}
	c.JSON(http.StatusOK, resp)
}

// GetBalance returns the balance of the addresses given as query parameters.
func (h *Handler) GetBalance(c *gin.Context) {
	addresses, ok := h.queryAddresses(c)
	if !ok {
		return
	}
	h.writeBalance(c, entity.NewAccount("", addresses...))
}

// GetAccountBalance returns the balance of a stored account.
func (h *Handler) GetAccountBalance(c *gin.Context) {
	account, ok := h.account(c)
	if !ok {
		return
	}
	h.writeBalance(c, account)
}

func (h *Handler) writeBalance(c *gin.Context, account *entity.Account) {
	var chainID *entity.ChainID
	if q := strings.TrimSpace(c.Query("chain")); q != "" {
		id := entity.ChainID(q)
		chainID = &id
	}

	balance, failures, err := h.balances.BalanceReport(c.Request.Context(), account, chainID)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	if failures == nil {
		failures = []entity.ChainFailure{}
	}
	c.JSON(http.StatusOK, BalanceResponse{
		Data:     toBalanceDTO(balance, h.decimals(balance, chainID)),
		Failures: failures,
	})
}

// decimals picks the decimals of the aggregated amounts: the requested chain, else
// the first location, else the first connected chain.
func (h *Handler) decimals(b *entity.AccountBalance, chainID *entity.ChainID) int {
	if chainID != nil {
		if ch, ok := h.registry.Get(*chainID); ok {
			return ch.Decimals()
		}
	}
	if len(b.Locations) > 0 {
		return b.Locations[0].Decimals
	}
	for _, id := range h.registry.Chains() {
		if ch, ok := h.registry.Get(id); ok {
			return ch.Decimals()
		}
	}
	return 0
}

type createAccountRequest struct {
	ID        string   `json:"id"`
	Addresses []string `json:"addresses"`
}

// CreateAccount stores a new account.
func (h *Handler) CreateAccount(c *gin.Context) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if !h.validAddresses(c, req.Addresses) {
		return
	}
	account := entity.NewAccount(strings.TrimSpace(req.ID), req.Addresses...)
	if account.Len() == 0 {
		h.badRequest(c, "at least one address is required")
		return
	}
	if account.ID != "" {
		if _, exists := h.accounts.Get(account.ID); exists {
			h.badRequest(c, "account "+account.ID+" already exists")
			return
		}
	}
	c.JSON(http.StatusCreated, toAccountDTO(h.accounts.Save(account)))
}

// GetAccount returns a stored account.
func (h *Handler) GetAccount(c *gin.Context) {
	account, ok := h.account(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toAccountDTO(account))
}

type updateAddressesRequest struct {
	Add    []string `json:"add"`
	Remove []string `json:"remove"`
	Clear  bool     `json:"clear"`
}

// UpdateAddresses edits the address list of a stored account. Clear runs first, then
// removals, then additions.
func (h *Handler) UpdateAddresses(c *gin.Context) {
	var req updateAddressesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if !h.validAddresses(c, req.Add) {
		return
	}
	id := c.Param("id")
	account, ok := h.accounts.Update(id, func(a *entity.Account) {
		if req.Clear {
			a.Clear()
		}
		for _, addr := range req.Remove {
			a.Remove(addr)
		}
		a.Add(req.Add...)
	})
	if !ok {
		h.accountNotFound(c, id)
		return
	}
	c.JSON(http.StatusOK, toAccountDTO(account))
}

// DeleteAccount removes a stored account.
func (h *Handler) DeleteAccount(c *gin.Context) {
	id := c.Param("id")
	if !h.accounts.Delete(id) {
		h.accountNotFound(c, id)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetAccountPubkeys maps the addresses of a stored account to their public keys.
func (h *Handler) GetAccountPubkeys(c *gin.Context) {
	account, ok := h.account(c)
	if !ok {
		return
	}
	pubkeys, err := account.Pubkeys()
	if err != nil {
		h.badRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": account.ID, "pubkeys": pubkeys})
}

// GetAssets lists the assets of a chain.
func (h *Handler) GetAssets(c *gin.Context) {
	api, ok := h.assetAPI(c)
	if !ok {
		return
	}
	assets, err := api.GetAssets(c.Request.Context())
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	out := make([]AssetDTO, 0, len(assets))
	for _, a := range assets {
		out = append(out, toAssetDTO(a))
	}
	c.JSON(http.StatusOK, gin.H{"chain": c.Param("chain"), "data": out})
}

// GetAssetBalance returns the holdings of one asset for the queried addresses.
func (h *Handler) GetAssetBalance(c *gin.Context) {
	api, ok := h.assetAPI(c)
	if !ok {
		return
	}
	addresses, ok := h.queryAddresses(c)
	if !ok {
		return
	}
	holdings, err := api.GetAssetBalance(c.Request.Context(), addresses, entity.Module(c.Param("module")), c.Param("assetId"))
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	resp := gin.H{"chain": c.Param("chain"), "module": c.Param("module"), "assetId": c.Param("assetId"), "data": []AssetBalanceDTO{}}
	if holdings != nil {
		resp["data"] = toAssetBalanceDTOs(holdings.Balances)
	}
	c.JSON(http.StatusOK, resp)
}

// GetAssetBalances returns every asset balance of one address on a chain.
func (h *Handler) GetAssetBalances(c *gin.Context) {
	api, ok := h.assetAPI(c)
	if !ok {
		return
	}
	addresses, ok := h.queryAddresses(c)
	if !ok {
		return
	}
	balances, err := api.GetBalances(c.Request.Context(), addresses)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chain": c.Param("chain"), "data": toAssetBalanceDTOs(balances)})
}

func (h *Handler) account(c *gin.Context) (*entity.Account, bool) {
	id := c.Param("id")
	account, ok := h.accounts.Get(id)
	if !ok {
		h.accountNotFound(c, id)
	}
	return account, ok
}

func (h *Handler) assetAPI(c *gin.Context) (chain.AssetAPI, bool) {
	id := entity.ChainID(c.Param("chain"))
	if h.registry.Status() != chain.StatusConnected {
		h.abortWithError(c, huberrors.New(huberrors.ErrNotConnected, "", "", ""))
		return nil, false
	}
	ch, ok := h.registry.Get(id)
	if !ok {
		h.abortWithError(c, huberrors.Newf(huberrors.ErrChainNotFound, string(id), "", "chain %s is not connected", id))
		return nil, false
	}
	api, ok := ch.Assets()
	if !ok {
		h.abortWithError(c, huberrors.Newf(huberrors.ErrCapabilityUnavailable, string(id), "", "chain %s has no asset modules", id))
		return nil, false
	}
	return api, true
}

// queryAddresses reads the repeated "address" query parameter, also accepting
// comma separated lists.
func (h *Handler) queryAddresses(c *gin.Context) ([]string, bool) {
	var addresses []string
	for _, v := range c.QueryArray("address") {
		for _, a := range strings.Split(v, ",") {
			if a = strings.TrimSpace(a); a != "" {
				addresses = append(addresses, a)
			}
		}
	}
	if len(addresses) == 0 {
		h.badRequest(c, "at least one address query parameter is required")
		return nil, false
	}
	return addresses, h.validAddresses(c, addresses)
}

func (h *Handler) validAddresses(c *gin.Context, addresses []string) bool {
	for _, a := range addresses {
		if _, err := ss58.AddressPubkey(a); err != nil {
			h.badRequest(c, "invalid address "+a+": "+err.Error())
			return false
		}
	}
	return true
}
