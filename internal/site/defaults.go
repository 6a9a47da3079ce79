package site

// Section keys of the built-in navigation.
const (
	SectionProducts = "products"
	SectionSocial   = "social"
	SectionFriends  = "friends"
)

// DefaultSite returns a fresh copy of the built-in site configuration.
func DefaultSite() Site {
	nav, err := NewNavigation(
		Section{
			Key:   SectionProducts,
			Title: "作品",
			Links: []Link{
				{Name: "本站博客", URL: "/"},
				{Name: "Heisenberg Link", URL: "https://borninsea.com"},
			},
		},
		Section{
			Key:   SectionSocial,
			Title: "社媒",
			Links: []Link{
				{Name: "Twitter", URL: "https://twitter.com/edwin_uestc"},
				{Name: "Github", URL: "https://github.com/wanghaisheng"},
				{Name: "Telegram", URL: "https://t.me/xxx"},
			},
		},
		Section{
			Key:   SectionFriends,
			Title: "友链",
			Links: []Link{
				{Name: "TiktokaStudio", URL: "https://tiktokastudio.com"},
				{Name: "HeyTCM", URL: "https://heytcm.com"},
			},
		},
	)
	if err != nil {
		// The literal above has unique keys.
		panic(err)
	}

	return Site{
		Metadata: Metadata{
			Title:       "Heisenberg Github Activity daily track",
			Description: "海生在GitHub上的蛛丝马迹",
			Email:       "admin@borninsea.com",
			Name:        "daily.borninsea.com",
			URL:         "https://daily.borninsea.com",
			Lang:        "zh-CN",
			Author:      "Wanghaisheng",
		},
		Navigation: nav,
		Copyright: Copyright{
			URL:  "https://borninsea.com",
			Text: "Made by Heisenberg",
		},
	}
}
