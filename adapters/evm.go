package adapters

import (
	"strings"

	"nft-market/internal/types"
)

func pathURL(format string) func(id string) string {
	return func(id string) string {
		return strings.ReplaceAll(format, "{id}", id)
	}
}

func openSea() Strategy {
	const main = `//*[@id="main"]/div/div/div`
	return Strategy{
		Marketplace: types.OpenSea,
		Page: Page{
			URL: pathURL("https://opensea.io/collection/{id}"),
			Variants: []Variant{
				{
					FieldName:         {Locator: main + `/div[3]/div/div/div[1]/div/div[2]/h1`},
					FieldListingCount: {Locator: main + `/div[5]/div/div[1]/div/div[2]/div[3]/div/div[1]/a/div/span[1]/div`, Post: firstLine},
					FieldOwnerCount:   {Locator: main + `/div[5]/div/div[1]/div/div[2]/div[3]/div/div[2]/a/div/span[1]/div`, Post: firstLine},
					FieldFloor:        {Locator: main + `/div[5]/div/div[1]/div/div[2]/div[3]/div/div[6]/a/div/span[1]/div`, Post: firstLine},
					FieldVolume:       {Locator: main + `/div[5]/div/div[1]/div/div[2]/div[3]/div/div[3]/a/div/span[1]/div`, Post: firstLine},
				},
				// layout with the item count in the header
				{
					FieldName:   {Locator: main + `/div[3]/div/div/div[1]/div/div[2]/h1`},
					FieldSupply: {Locator: main + `/div[5]/div/div[1]/div/div[1]/div[1]/span/div[2]/span/div/span[1]/div/div[2]/span/div/div[2]/span`},
					FieldFloor:  {Locator: main + `/div[5]/div/div[1]/div/div[2]/div[3]/div/div[6]/a/div/span[1]/div`, Post: firstLine},
					FieldVolume: {Locator: main + `/div[5]/div/div[1]/div/div[2]/div[3]/div/div[3]/a/div/span[1]/div`, Post: firstLine},
				},
			},
		},
	}
}

func tofuNFT() Strategy {
	const stats = `//*[@id="__next"]/div[2]/div[1]/div[2]/div[1]`
	return Strategy{
		Marketplace: types.TofuNFT,
		Page: Page{
			URL: pathURL("https://tofunft.com/collection/{id}/items"),
			Variants: []Variant{{
				FieldName:         {Locator: `//*[@id="__next"]/div[2]/div[1]/div[1]/h1`},
				FieldListingCount: {Locator: stats + `/div[3]/div[2]`},
				FieldOwnerCount:   {Locator: stats + `/div[2]/div[2]`},
				FieldFloor:        {Locator: stats + `/div[5]/div[2]`},
				FieldVolume:       {Locator: stats + `/div[4]/div[2]`},
			}},
		},
	}
}

func pancakeSwap() Strategy {
	const header = `//*[@id="__next"]/div[1]/div[3]/div/div[1]/div/div[3]`
	return Strategy{
		Marketplace: types.PancakeSwap,
		Page: Page{
			URL: pathURL("https://pancakeswap.finance/nfts/collections/{id}"),
			Variants: []Variant{{
				FieldName:         {Locator: header + `/div[1]/h1`},
				FieldSupply:       {Locator: header + `/div[2]/div/div[1]/div[2]`},
				FieldListingCount: {Locator: header + `/div[2]/div/div[2]/div[2]`},
				FieldFloor:        {Locator: header + `/div[2]/div/div[3]/div[2]`},
				FieldVolume:       {Locator: header + `/div[2]/div/div[4]/div[2]`},
			}},
		},
	}
}

// raribleURL handles contract addresses and named projects, which use different paths
func raribleURL(id string) string {
	if strings.HasPrefix(id, "0x") {
		return "https://rarible.com/collection/" + id
	}
	return "https://rarible.com/" + id + "/items"
}

func rarible() Strategy {
	const root = `//*[@id="root"]/div[2]/div/div/div[2]/div/div/div[1]`
	eth := strip("ETH")
	return Strategy{
		Marketplace: types.Rarible,
		Page: Page{
			URL: raribleURL,
			Variants: []Variant{{
				FieldName:       {Locator: root + `/div[2]/div/div/span`},
				FieldSupply:     {Locator: root + `/div[3]/div/div[1]/div[3]/div/span`},
				FieldOwnerCount: {Locator: root + `/div[3]/div/div[1]/div[4]/div/span`},
				FieldFloor:      {Locator: root + `/div[3]/div/div[1]/div[1]/div/span`, Post: eth},
				FieldVolume:     {Locator: root + `/div[3]/div/div[1]/div[2]/div/span`, Post: eth},
			}},
		},
	}
}

func ghostMarket() Strategy {
	const stats = `//*[@id="__layout"]/div/section/div/div[2]/div[1]/div`
	variant := func(wrap string) Variant {
		return Variant{
			FieldName:       {Locator: `//*[@id="__layout"]/div/section/div/div[1]/div[3]/span[1]`},
			FieldSupply:     {Locator: stats + `/div[1]/span/div[2]/div/div/div[1]`},
			FieldOwnerCount: {Locator: stats + `/div[2]/span/div[2]/div/div/div[1]`},
			FieldFloor:      {Locator: stats + `/div[3]/` + wrap + `div/div/div[1]`},
			FieldVolume:     {Locator: stats + `/div[4]/` + wrap + `div/div/div[1]`},
		}
	}
	return Strategy{
		Marketplace: types.GhostMarket,
		Page: Page{
			URL:      pathURL("https://ghostmarket.io/collection/{id}/?tab=nfts"),
			Variants: []Variant{variant("span/div[2]/"), variant("")},
		},
	}
}

func cryptocom() Strategy {
	const header = `//*[@id="root"]/div[1]/div/div[3]/div`
	return Strategy{
		Marketplace: types.Cryptocom,
		Page: Page{
			URL: pathURL("https://crypto.com/nft/collection/{id}"),
			Variants: []Variant{{
				FieldName:         {Locator: header + `/div[1]/div[2]`},
				FieldListingCount: {Locator: header + `/div[3]/div/div[1]/span`},
				FieldOwnerCount:   {Locator: header + `/div[3]/div/div[2]/span`},
				FieldFloor:        {Locator: header + `/div[3]/div/div[3]/div/div[2]/div/span[2]/div`},
				FieldVolume:       {Locator: header + `/div[3]/div/div[4]/div/span[2]/div`},
			}},
		},
	}
}

func gem() Strategy {
	const app = `//*[@id="app"]/div/div[2]/div[2]/div[1]/div`
	return Strategy{
		Marketplace: types.Gem,
		Page: Page{
			URL: pathURL("https://www.gem.xyz/collection/{id}"),
			Variants: []Variant{{
				FieldName:         {Locator: app + `/div[1]/div/div[1]/div[1]/div`},
				FieldListingCount: {Locator: app + `/div[2]/div/div[1]/div[2]/div[1]/div/div[2]/div[1]`, Post: strip("results")},
				FieldFloor:        {Locator: app + `/div[1]/div/div[1]/div[2]/span[3]/span[2]`},
				FieldVolume:       {Locator: app + `/div[1]/div/div[1]/div[2]/span[1]/span[2]`},
			}},
		},
	}
}

func nfTrade() Strategy {
	const main = `//*[@id="__next"]/div/main/div/div/div[1]/div[1]`
	return Strategy{
		Marketplace: types.NFTrade,
		Page: Page{
			URL: pathURL("https://nftrade.com/assets/{id}"),
			Variants: []Variant{{
				FieldName:   {Locator: main + `/div[3]/div[1]/div[2]/div[1]/div[1]`},
				FieldFloor:  {Locator: main + `/div[4]/div[2]/div[1]/div[2]`},
				FieldVolume: {Locator: main + `/div[4]/div[2]/div[4]/div[2]`},
			}},
		},
	}
}

func xanalia() Strategy {
	const card = `//*[@id="home-page"]/div/div/div/div[2]/div/div`
	return Strategy{
		Marketplace: types.XANALIA,
		Page: Page{
			URL: pathURL("https://www.xanalia.com/{id}"),
			Variants: []Variant{{
				FieldName:       {Locator: card + `[1]`},
				FieldSupply:     {Locator: card + `[2]/div[1]/h5`},
				FieldOwnerCount: {Locator: card + `[2]/div[2]/h5`},
				FieldFloor:      {Locator: card + `[2]/div[3]/h5`},
				FieldVolume:     {Locator: card + `[2]/div[4]/h5`},
			}},
		},
	}
}

func coinbase() Strategy {
	const header = `//*[@id="app"]/div[3]/div/div/main/div[1]/div[2]`
	eth := strip("ETH")
	return Strategy{
		Marketplace: types.Coinbase,
		Page: Page{
			URL: pathURL("https://nft.coinbase.com/collection/{id}"),
			Variants: []Variant{{
				FieldName:         {Locator: header + `/h1/span/span[1]`},
				FieldListingCount: {Locator: header + `/div[2]/div/div[1]/span[1]`},
				FieldOwnerCount:   {Locator: header + `/div[2]/div/div[2]/span[1]`},
				FieldFloor:        {Locator: header + `/div[2]/div/div[3]/span[1]/div/div/div/span[1]`, Post: eth},
				FieldVolume:       {Locator: header + `/div[2]/div/div[4]/span[1]`, Post: eth},
			}},
		},
	}
}

func niftyGateway() Strategy {
	const panel = `//*[@id="root"]/div/div[1]/div/div/div[2]`
	return Strategy{
		Marketplace: types.NiftyGateway,
		Page: Page{
			URL: pathURL("https://niftygateway.com/marketplace/collectible/{id}"),
			Variants: []Variant{{
				FieldName:         {Locator: panel + `/div[1]/div/div[2]/h2`},
				FieldListingCount: {Locator: `//*[@id="tabpanel-0"]/div/div[1]/div/div[1]/p/b`},
				FieldOwnerCount:   {Locator: panel + `/div[2]/div/div[3]/div[1]/div/h4/span`},
				FieldFloor:        {Locator: panel + `/div[2]/div/div[3]/div[2]/div/h4/span`, Post: firstWord},
				FieldVolume:       {Locator: panel + `/div[2]/div/div[3]/div[4]/div/h4/span`, Post: firstWord},
			}},
		},
	}
}
