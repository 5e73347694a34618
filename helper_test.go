package stockledger

import "github.com/etnz/stockledger/date"

// buy is a helper for test to create a buy trade from consts
func buy(on, ticker string, quantity int64, price, fee float64) Trade {
	return NewBuy(date.MustParse(on), ticker, Quantity(quantity), M(price, ""), M(fee, ""))
}

// sell is a helper for test to create a sell trade from consts
func sell(on, ticker string, quantity int64, price, fee float64) Trade {
	return NewSell(date.MustParse(on), ticker, Quantity(quantity), M(price, ""), M(fee, ""))
}

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }
