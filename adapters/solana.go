package adapters

import "nft-market/internal/types"

func solanart() Strategy {
	const stats = `//*[@id="__next"]/div/div[1]/div[2]/div[2]/div[2]/div[2]`
	return Strategy{
		Marketplace: types.Solanart,
		Page: Page{
			URL: pathURL("https://solanart.io/collections/{id}?tab=items"),
			Variants: []Variant{{
				FieldName:       {Locator: stats + `/div[1]/h2`},
				FieldSupply:     {Locator: stats + `/div[2]/div[1]/div[1]`},
				FieldOwnerCount: {Locator: stats + `/div[2]/div[3]/div[1]`},
				FieldFloor:      {Locator: stats + `/div[2]/div[5]/div[1]`, Post: removeSolMark},
				FieldVolume:     {Locator: stats + `/div[2]/div[7]/div[1]`, Post: removeSolMark},
			}},
		},
	}
}

func magicEden() Strategy {
	const header = `//*[@id="root"]/div/div/div/div[3]/div[2]/div[1]/div`
	return Strategy{
		Marketplace: types.MagicEden,
		Page: Page{
			URL: pathURL("https://magiceden.io/marketplace/{id}"),
			Variants: []Variant{{
				FieldName:         {Locator: header + `/h1`},
				FieldListingCount: {Locator: header + `/div[4]/div/div/div[4]/div/span[2]`},
				FieldFloor:        {Locator: header + `/div[4]/div/div/div[1]/div/span[2]`, Post: removeSolMark},
				FieldVolume:       {Locator: header + `/div[4]/div/div/div[2]/div/span[2]`, Post: removeSolMark},
			}},
		},
	}
}
