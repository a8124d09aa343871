package sources

import "github.com/zagzy8776/realssa-news-agg/internal/models"

// DefaultFeeds is the built-in registry used when no feeds file is found.
func DefaultFeeds() []models.FeedSource {
	return []models.FeedSource{
		// Ghana
		{URL: "https://www.myjoyonline.com/feed/", SourceName: "Joy Online", Category: "General News", Country: "Ghana"},
		{URL: "https://www.graphic.com.gh/rss", SourceName: "Daily Graphic", Category: "General News", Country: "Ghana"},
		{URL: "https://citinewsroom.com/feed/", SourceName: "Citi Newsroom", Category: "General News", Country: "Ghana"},
		{URL: "https://www.modernghana.com/rss", SourceName: "Modern Ghana", Category: "General News", Country: "Ghana"},
		{URL: "https://www.pulse.com.gh/feed", SourceName: "Pulse Ghana", Category: "Entertainment", Country: "Ghana"},
		{URL: "https://www.ghanaweb.com/GhanaHomePage/rss.php", SourceName: "GhanaWeb", Category: "General News", Country: "Ghana"},

		// Nigeria
		{URL: "https://rss.punchng.com/v1/category/latest_news", SourceName: "Punch", Category: "General News", Country: "Nigeria"},
		{URL: "https://www.vanguardngr.com/feed/", SourceName: "Vanguard", Category: "General News", Country: "Nigeria"},
		{URL: "https://www.premiumtimesng.com/feed", SourceName: "Premium Times", Category: "General News", Country: "Nigeria"},
		{URL: "https://dailytrust.com/feed", SourceName: "Daily Trust", Category: "General News", Country: "Nigeria"},
		{URL: "https://punchng.com/topics/business/feed/", SourceName: "Punch Business", Category: "Business", Country: "Nigeria"},
		{URL: "https://www.vanguardngr.com/category/business/feed/", SourceName: "Vanguard Business", Category: "Business", Country: "Nigeria"},

		// Kenya
		{URL: "https://nation.africa/kenya/rss", SourceName: "Daily Nation", Category: "General News", Country: "Kenya"},
		{URL: "https://techweez.com/feed/", SourceName: "Techweez", Category: "Technology", Country: "Kenya"},
		{URL: "https://www.standardmedia.co.ke/rss/headlines.php", SourceName: "The Standard", Category: "General News", Country: "Kenya"},

		// South Africa
		{URL: "https://www.news24.com/rss", SourceName: "News24", Category: "General News", Country: "South Africa"},
		{URL: "https://mg.co.za/feed/", SourceName: "Mail & Guardian", Category: "General News", Country: "South Africa"},
		{URL: "https://www.dailymaverick.co.za/feed/", SourceName: "Daily Maverick", Category: "General News", Country: "South Africa"},
		{URL: "https://businesstech.co.za/news/feed/", SourceName: "BusinessTech", Category: "Business", Country: "South Africa"},
		{URL: "https://mybroadband.co.za/news/feed", SourceName: "MyBroadband", Category: "Technology", Country: "South Africa"},

		// Egypt
		{URL: "http://english.ahram.org.eg/rss.ashx", SourceName: "Ahram Online", Category: "General News", Country: "Egypt"},
		{URL: "https://egyptindependent.com/feed/", SourceName: "Egypt Independent", Category: "General News", Country: "Egypt"},

		// Morocco
		{URL: "https://www.moroccoworldnews.com/feed", SourceName: "Morocco World News", Category: "General News", Country: "Morocco"},
		{URL: "https://en.hespress.com/feed", SourceName: "Hespress English", Category: "General News", Country: "Morocco"},

		// Ethiopia
		{URL: "https://addisstandard.com/feed/", SourceName: "Addis Standard", Category: "General News", Country: "Ethiopia"},

		// Pan-African
		{URL: "https://allafrica.com/tools/headlines/rdf/latest/headlines.rdf", SourceName: "AllAfrica", Category: "Pan-African", Country: "Africa"},
		{URL: "https://www.africanews.com/feed/rss", SourceName: "Africanews", Category: "Pan-African", Country: "Africa"},
		{URL: "http://feeds.bbci.co.uk/news/world/africa/rss.xml", SourceName: "BBC Africa", Category: "Pan-African", Country: "Africa"},
		{URL: "https://globalvoices.org/-/world/sub-saharan-africa/rss", SourceName: "Global Voices Africa", Category: "Pan-African", Country: "Africa"},

		// World News
		{URL: "https://feeds.bbci.co.uk/news/world/rss.xml", SourceName: "BBC World", Category: "World News", Country: "Global"},
		{URL: "https://www.reuters.com/arc/outboundfeeds/rss/category/world/", SourceName: "Reuters World", Category: "World News", Country: "Global"},
		{URL: "https://www.aljazeera.com/xml/rss/all.xml", SourceName: "Al Jazeera", Category: "World News", Country: "Global"},
		{URL: "https://news.un.org/feed/subscribe/en/news/all/rss.xml", SourceName: "UN News", Category: "World News", Country: "Global"},
		{URL: "https://rss.nytimes.com/services/xml/rss/nyt/World.xml", SourceName: "New York Times World", Category: "World News", Country: "Global"},
		{URL: "https://www.theguardian.com/world/rss", SourceName: "The Guardian World", Category: "World News", Country: "Global"},
		{URL: "https://www.independent.co.uk/news/world/rss", SourceName: "The Independent World", Category: "World News", Country: "Global"},
		{URL: "https://apnews.com/index.rss", SourceName: "Associated Press", Category: "World News", Country: "Global"},

		// USA
		{URL: "https://rss.cnn.com/rss/cnn_topstories.rss", SourceName: "CNN", Category: "General News", Country: "USA"},
		{URL: "https://feeds.nbcnews.com/nbcnews/public/news", SourceName: "NBC News", Category: "General News", Country: "USA"},
		{URL: "https://abcnews.go.com/abcnews/internationalheadlines", SourceName: "ABC News", Category: "General News", Country: "USA"},
		{URL: "https://rss.nytimes.com/services/xml/rss/nyt/HomePage.xml", SourceName: "New York Times", Category: "General News", Country: "USA"},
		{URL: "https://www.washingtonpost.com/rss", SourceName: "Washington Post", Category: "General News", Country: "USA"},
		{URL: "https://www.usatoday.com/rss/", SourceName: "USA Today", Category: "General News", Country: "USA"},

		// UK
		{URL: "https://feeds.bbci.co.uk/news/rss.xml", SourceName: "BBC News", Category: "General News", Country: "UK"},
		{URL: "https://www.theguardian.com/uk/rss", SourceName: "The Guardian UK", Category: "General News", Country: "UK"},
		{URL: "https://www.telegraph.co.uk/rss.xml", SourceName: "The Telegraph", Category: "General News", Country: "UK"},
		{URL: "https://www.independent.co.uk/news/uk/rss", SourceName: "The Independent UK", Category: "General News", Country: "UK"},
		{URL: "https://www.thetimes.co.uk/rss", SourceName: "The Times", Category: "General News", Country: "UK"},

		// Canada
		{URL: "https://www.cbc.ca/webfeed/rss/rss-topstories", SourceName: "CBC Top Stories", Category: "General News", Country: "Canada"},
		{URL: "https://www.cbc.ca/webfeed/rss/rss-world", SourceName: "CBC World", Category: "World News", Country: "Canada"},
		{URL: "https://www.theglobeandmail.com/arc/outboundfeeds/rss/category/politics/", SourceName: "Globe and Mail", Category: "Politics", Country: "Canada"},

		// Technology
		{URL: "https://www.theverge.com/rss/index.xml", SourceName: "The Verge", Category: "Technology", Country: "Global"},
		{URL: "https://techcrunch.com/feed/", SourceName: "TechCrunch", Category: "Technology", Country: "Global"},
		{URL: "https://www.wired.com/feed/rss", SourceName: "Wired", Category: "Technology", Country: "Global"},
		{URL: "https://www.cnet.com/rss/news/", SourceName: "CNET", Category: "Technology", Country: "Global"},
		{URL: "https://www.engadget.com/rss.xml", SourceName: "Engadget", Category: "Technology", Country: "Global"},
		{URL: "https://arstechnica.com/feed/", SourceName: "Ars Technica", Category: "Technology", Country: "Global"},
		{URL: "https://www.zdnet.com/news/rss.xml", SourceName: "ZDNet", Category: "Technology", Country: "Global"},
		{URL: "https://www.techmeme.com/feed.xml", SourceName: "Techmeme", Category: "Technology", Country: "Global"},
		{URL: "https://news.ycombinator.com/rss", SourceName: "Hacker News", Category: "Technology", Country: "Global"},
		{URL: "https://www.reddit.com/r/technology/.rss", SourceName: "Reddit Technology", Category: "Technology", Country: "Global"},

		// Business
		{URL: "https://feeds.bloomberg.com/markets/news.rss", SourceName: "Bloomberg Markets", Category: "Business", Country: "Global"},
		{URL: "https://www.ft.com/?format=rss", SourceName: "Financial Times", Category: "Business", Country: "Global"},
		{URL: "https://www.economist.com/rss", SourceName: "The Economist", Category: "Business", Country: "Global"},
		{URL: "https://www.wsj.com/xml/rss/3_7085.xml", SourceName: "Wall Street Journal", Category: "Business", Country: "Global"},
		{URL: "https://www.forbes.com/real-time/feed2/", SourceName: "Forbes", Category: "Business", Country: "Global"},
		{URL: "https://www.cnbc.com/id/100003114/device/rss/rss.html", SourceName: "CNBC", Category: "Business", Country: "Global"},
		{URL: "https://www.businessinsider.com/rss", SourceName: "Business Insider", Category: "Business", Country: "Global"},
		{URL: "https://fortune.com/feed/", SourceName: "Fortune", Category: "Business", Country: "Global"},

		// Asia
		{URL: "https://www.scmp.com/rss/91/feed", SourceName: "South China Morning Post", Category: "General News", Country: "China"},
		{URL: "https://news.cgtn.com/rss/china.xml", SourceName: "CGTN China", Category: "General News", Country: "China"},
		{URL: "http://www.chinadaily.com.cn/rss/china_rss.xml", SourceName: "China Daily", Category: "General News", Country: "China"},
		{URL: "https://www3.nhk.or.jp/nhkworld/en/news/rss.xml", SourceName: "NHK World Japan", Category: "General News", Country: "Japan"},
		{URL: "https://www.channelnewsasia.com/rssfeeds/8395986", SourceName: "CNA Singapore", Category: "General News", Country: "Singapore"},
		{URL: "https://www.straitstimes.com/news/world/rss.xml", SourceName: "Straits Times", Category: "General News", Country: "Singapore"},
		{URL: "https://www.thehindu.com/news/national/feeder/default.rss", SourceName: "The Hindu", Category: "General News", Country: "India"},
		{URL: "https://timesofindia.indiatimes.com/rssfeeds/-2128936835.cms", SourceName: "Times of India", Category: "General News", Country: "India"},

		// Science
		{URL: "https://www.sciencedaily.com/rss/all.xml", SourceName: "Science Daily", Category: "Science", Country: "Global"},
		{URL: "https://www.nature.com/nature.rss", SourceName: "Nature", Category: "Science", Country: "Global"},
		{URL: "https://www.newscientist.com/feed/home", SourceName: "New Scientist", Category: "Science", Country: "Global"},
		{URL: "https://www.scientificamerican.com/feed/", SourceName: "Scientific American", Category: "Science", Country: "Global"},
		{URL: "http://feeds.feedburner.com/spacedotcom", SourceName: "Space.com", Category: "Science", Country: "Global"},

		// Sports
		{URL: "https://www.espn.com/espn/rss/news", SourceName: "ESPN", Category: "Sports", Country: "Global"},
		{URL: "https://www.bbc.com/sport/rss.xml", SourceName: "BBC Sport", Category: "Sports", Country: "Global"},
		{URL: "https://www.skysports.com/rss/12040", SourceName: "Sky Sports", Category: "Sports", Country: "Global"},
		{URL: "https://www.goal.com/en/feeds/news", SourceName: "Goal.com", Category: "Sports", Country: "Global"},
		{URL: "https://www.theguardian.com/sport/rss", SourceName: "Guardian Sports", Category: "Sports", Country: "Global"},
	}
}
