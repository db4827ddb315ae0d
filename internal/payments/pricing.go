package payments

import (
	"fmt"
	"strings"

	"github.com/watoukuang/demochain/models"
)

var planPrices = map[string]float64{
	models.PlanMonthly:  3.0,
	models.PlanYearly:   10.0,
	models.PlanLifetime: 15.0,
}

var methodAddresses = map[string]string{
	models.MethodUSDTTRC20: "TL1a2b3c4d5e6f7g8h9i0j",
	models.MethodUSDTERC20: "0x1111111111111111111111111111111111111111",
	models.MethodUSDTBEP20: "0x2222222222222222222222222222222222222222",
}

// PriceForPlan maps a subscription plan to its USDT price.
func PriceForPlan(plan string) (float64, error) {
	price, ok := planPrices[plan]
	if !ok {
		return 0, ErrUnsupportedPlan
	}
	return price, nil
}

// AddressForMethod maps a payment rail to its receiving address.
func AddressForMethod(method string) (string, error) {
	addr, ok := methodAddresses[method]
	if !ok {
		return "", ErrUnsupportedMethod
	}
	return addr, nil
}

// GenerateQR builds a scannable payload wrapped in an inline SVG data URI.
func GenerateQR(address string, amount float64, method string) string {
	data := fmt.Sprintf("%s:%s?amount=%v", method, address, amount)
	svg := fmt.Sprintf(
		"<svg width='200' height='200' xmlns='http://www.w3.org/2000/svg'>"+
			"<rect width='200' height='200' fill='white'/>"+
			"<text x='100' y='100' text-anchor='middle' font-size='12' fill='black'>%s</text>"+
			"</svg>",
		data,
	)
	svg = strings.ReplaceAll(svg, "#", "%23")
	svg = strings.ReplaceAll(svg, " ", "%20")
	return "data:image/svg+xml;charset=utf-8," + svg
}

// GenerateDeepLink builds a wallet deep link for the given rail.
// An unknown method yields an empty string: method validity is checked
// earlier, at order creation.
func GenerateDeepLink(address string, amount float64, method string) string {
	switch method {
	case models.MethodUSDTTRC20:
		return fmt.Sprintf(
			"tronlink://transfer?to=%s&amount=%v&token=TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t",
			address, amount,
		)
	case models.MethodUSDTERC20:
		// ERC-20 amounts are expressed in 6-decimal base units.
		return fmt.Sprintf(
			"ethereum:%s@1?value=%d&token=0xdAC17F958D2ee523a2206206994597C13D831ec7",
			address, uint64(amount*1e6),
		)
	case models.MethodUSDTBEP20:
		return fmt.Sprintf(
			"bnb:%s?amount=%v&token=0x55d398326f99059fF775485246999027B3197955",
			address, amount,
		)
	default:
		return ""
	}
}
