package payments

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/watoukuang/demochain/models"
)

func TestPriceForPlan(t *testing.T) {
	tests := []struct {
		plan  string
		price float64
	}{
		{models.PlanMonthly, 3.0},
		{models.PlanYearly, 10.0},
		{models.PlanLifetime, 15.0},
	}

	for _, tt := range tests {
		t.Run(tt.plan, func(t *testing.T) {
			price, err := PriceForPlan(tt.plan)
			assert.NoError(t, err)
			assert.Equal(t, tt.price, price)
		})
	}

	_, err := PriceForPlan("weekly")
	assert.ErrorIs(t, err, ErrUnsupportedPlan)
}

func TestAddressForMethod(t *testing.T) {
	tests := []struct {
		method  string
		address string
	}{
		{models.MethodUSDTTRC20, "TL1a2b3c4d5e6f7g8h9i0j"},
		{models.MethodUSDTERC20, "0x1111111111111111111111111111111111111111"},
		{models.MethodUSDTBEP20, "0x2222222222222222222222222222222222222222"},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			addr, err := AddressForMethod(tt.method)
			assert.NoError(t, err)
			assert.Equal(t, tt.address, addr)
		})
	}

	_, err := AddressForMethod("usdt_sol")
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}

func TestGenerateQR(t *testing.T) {
	qr := GenerateQR("TL1a2b3c4d5e6f7g8h9i0j", 3, models.MethodUSDTTRC20)

	assert.True(t, strings.HasPrefix(qr, "data:image/svg+xml;charset=utf-8,"))
	assert.Contains(t, qr, "usdt_trc20:TL1a2b3c4d5e6f7g8h9i0j?amount=3")
	assert.NotContains(t, qr, " ", "payload spaces must be escaped")
}

func TestGenerateDeepLink(t *testing.T) {
	t.Run("trc20", func(t *testing.T) {
		link := GenerateDeepLink("TL1a2b3c4d5e6f7g8h9i0j", 3, models.MethodUSDTTRC20)
		assert.Equal(t,
			"tronlink://transfer?to=TL1a2b3c4d5e6f7g8h9i0j&amount=3&token=TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t",
			link,
		)
	})

	t.Run("erc20 scales to base units", func(t *testing.T) {
		link := GenerateDeepLink("0x1111111111111111111111111111111111111111", 10, models.MethodUSDTERC20)
		assert.Equal(t,
			"ethereum:0x1111111111111111111111111111111111111111@1?value=10000000&token=0xdAC17F958D2ee523a2206206994597C13D831ec7",
			link,
		)
	})

	t.Run("bep20", func(t *testing.T) {
		link := GenerateDeepLink("0x2222222222222222222222222222222222222222", 15, models.MethodUSDTBEP20)
		assert.Equal(t,
			"bnb:0x2222222222222222222222222222222222222222?amount=15&token=0x55d398326f99059fF775485246999027B3197955",
			link,
		)
	})

	t.Run("unknown method yields empty string", func(t *testing.T) {
		assert.Equal(t, "", GenerateDeepLink("addr", 3, "usdt_sol"))
	})
}
