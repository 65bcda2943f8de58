package adapters

import "nft-market/internal/types"

const nftGeekBase = "https://t5t44-naaaa-aaaah-qcutq-cai.raw.ic0.app/collection/{id}"

// nftGeek reads the summary page, then owners from the holders tab and the
// latest trade from the transactions tab.
func nftGeek() Strategy {
	const content = `//*[@id="root"]/div[2]/div[2]/div/div/div[2]`
	return Strategy{
		Marketplace: types.NFTgeek,
		Explorer:    true,
		Page: Page{
			URL: pathURL(nftGeekBase + "/summary"),
			Variants: []Variant{{
				FieldName:         {Locator: `//*[@id="root"]/div[2]/div[2]/div/div/div[1]/div/div/span[1]`},
				FieldSupply:       {Locator: content + `/div[3]/div/div[1]/div/div[2]/span`, Post: removeSpaces},
				FieldListingCount: {Locator: content + `/div[3]/div/div[6]/div/div[2]/span`, Post: removeSpaces},
				FieldFloor:        {Locator: content + `/div[3]/div/div[2]/div/div[2]/span/span`, Post: removeSpaces},
				FieldVolume:       {Locator: content + `/div[3]/div/div[4]/div/div[2]/span`, Post: removeSpaces},
			}},
		},
		Supplements: []Page{
			{
				URL: pathURL(nftGeekBase + "/holders"),
				Variants: []Variant{{
					FieldOwnerCount: {Locator: content + `/div[3]/div/div/div/div[2]`, Post: removeSpaces},
				}},
			},
			{
				URL: pathURL(nftGeekBase + "/transactions"),
				Variants: []Variant{{
					FieldLastTrade: {Locator: content + `/div[5]/div[2]/div/div/div/div/div/table/tbody/tr[2]/td[8]`, Post: daysSince},
				}},
			},
		},
	}
}

func icScan() Strategy {
	const stats = `//*[@id="__next"]/div/div/main/div[2]/div[4]/div/div[2]`
	return Strategy{
		Marketplace: types.ICScan,
		Explorer:    true,
		Page: Page{
			URL: pathURL("https://icscan.io/nft/collection/{id}"),
			Variants: []Variant{{
				FieldName:         {Locator: `//*[@id="__next"]/div/div/main/div[2]/div[4]/div/div[1]/div[1]/div/div[1]`},
				FieldSupply:       {Locator: stats + `/div[2]/div[1]/div[2]/div[2]`},
				FieldListingCount: {Locator: stats + `/div[2]/div[1]/div[3]/div[2]`},
				FieldOwnerCount:   {Locator: stats + `/div[1]/div[2]/div[2]`, Post: firstLine},
				FieldFloor:        {Locator: stats + `/div[1]/div[1]/div[2]`, Post: firstWord},
				FieldVolume:       {Locator: stats + `/div[2]/div[2]/div[1]/div[2]`, Post: strip("ICP")},
			}},
		},
	}
}

// deprecated marks a strategy as superseded by NFTgeek
func deprecated(s Strategy) Strategy {
	s.Deprecated = true
	s.Successor = types.NFTgeek
	return s
}

func entrepot() Strategy {
	const header = `//*[@id="root"]/main/div/div[1]/div/div[1]/div/div`
	variant := func(card string) Variant {
		return Variant{
			FieldName:         {Locator: header + `[3]/h1`},
			FieldListingCount: {Locator: header + `[2]/div[1]/div/div[2]/strong`},
			FieldFloor:        {Locator: `//*[@id="mainListings"]/div[2]/div/div[2]/div[2]/div/div[1]/div/a/div[` + card + `]/div/div[4]/p`},
			FieldVolume:       {Locator: header + `[2]/div[1]/div/div[1]/strong`},
		}
	}
	return deprecated(Strategy{
		Marketplace: types.Entrepot,
		Page: Page{
			URL:      pathURL("https://entrepot.app/marketplace/{id}"),
			Variants: []Variant{variant("2"), variant("3")},
		},
	})
}

func cetoSwap() Strategy {
	const stats = `//*[@id="root"]/section/section/main/div/div[2]/div[1]`
	return deprecated(Strategy{
		Marketplace: types.CetoSwap,
		Page: Page{
			URL: pathURL("https://7pnex-saaaa-aaaai-qbhwa-cai.raw.ic0.app/#/nftmarket/{id}"),
			Variants: []Variant{{
				FieldName:         {Locator: stats + `/div[1]`},
				FieldSupply:       {Locator: stats + `/div[3]/div[5]/div/div/div/div[1]`},
				FieldListingCount: {Locator: stats + `/div[3]/div[1]/div/div/div/div[1]`},
				FieldOwnerCount:   {Locator: stats + `/div[3]/div[2]/div/div/div/div[1]`},
				FieldFloor:        {Locator: stats + `/div[3]/div[3]/div/div/div/div[1]/div/div`},
				FieldVolume:       {Locator: stats + `/div[3]/div[4]/div/div/div/div[1]/div/div`},
			}},
		},
	})
}

func ccc() Strategy {
	const header = `//*[@id="app"]/div[1]/div[2]/main/div/div[1]`
	return deprecated(Strategy{
		Marketplace: types.CCC,
		Page: Page{
			URL: pathURL("https://skeh5-daaaa-aaaai-aar4q-cai.raw.ic0.app/#/collection/{id}"),
			Variants: []Variant{{
				FieldName:         {Locator: header + `/div[2]/h2`},
				FieldSupply:       {Locator: header + `/div[3]/div[5]/div[2]`},
				FieldListingCount: {Locator: header + `/div[3]/div[2]/div[2]`},
				FieldOwnerCount:   {Locator: header + `/div[3]/div[4]/div[2]`, Post: absentIf("N/A")},
				FieldFloor:        {Locator: header + `/div[3]/div[3]/div[2]/div`},
				FieldVolume:       {Locator: header + `/div[3]/div[1]/div[2]/div`},
			}},
		},
	})
}

// jelly serves a single collection from its landing page; the id is not part of the URL
func jelly() Strategy {
	const items = `//*[@id="radix-6-content-items"]/div/div[2]/div/div[1]/div[1]/div[1]`
	return deprecated(Strategy{
		Marketplace: types.Jelly,
		Page: Page{
			URL: func(string) string { return "https://jelly.xyz/" },
			Variants: []Variant{{
				FieldName:       {Locator: `//*[@id="theme-root-element"]/div[3]/div[1]/div/div[2]/div[1]/div[2]/h2`},
				FieldSupply:     {Locator: items + `/div[1]/div[2]`},
				FieldOwnerCount: {Locator: items + `/div[2]/div[2]`},
				FieldFloor:      {Locator: items + `/div[3]/div[2]`},
				FieldVolume:     {Locator: items + `/div[4]/div[2]`},
			}},
		},
	})
}

func yumi() Strategy {
	const header = `//*[@id="App"]/section/div/div/div/div/div[1]`
	return deprecated(Strategy{
		Marketplace: types.YUMI,
		Page: Page{
			URL: pathURL("https://tppkg-ziaaa-aaaal-qatrq-cai.raw.ic0.app/market/collection-nft-list?id={id}"),
			Variants: []Variant{{
				FieldName:         {Locator: header + `/div[2]/div[2]`},
				FieldListingCount: {Locator: header + `/div[3]/div[1]/span[1]`},
				FieldOwnerCount:   {Locator: header + `/div[3]/div[2]/span[1]`},
				FieldFloor:        {Locator: header + `/div[3]/div[3]/span[1]`},
				FieldVolume:       {Locator: header + `/div[3]/div[4]/span[1]`},
			}},
		},
	})
}
