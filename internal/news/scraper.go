// Package news fetches recent headlines for a symbol and scores them for
// sentiment. It backs the optional sentiment analyzer; the engine runs with
// a neutral stub when this package is disabled.
package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"daily-trading-bot/internal/logger"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Headline is a single scraped news item.
type Headline struct {
	Title  string
	URL    string
	Source string
}

// Source describes a site to scrape and where headlines live in its markup.
type Source struct {
	Name      string
	BaseURL   string
	QueryPath string // {symbol} is replaced with the ticker
	Item      string // CSS selector for a headline container
	Title     string // selector for the headline text within an item
	Link      string // selector for the anchor within an item
	RateLimit time.Duration
}

func defaultSources() []Source {
	return []Source{
		{
			Name:      "YahooFinance",
			BaseURL:   "https://finance.yahoo.com",
			QueryPath: "/quote/{symbol}/news",
			Item:      "li.stream-item",
			Title:     "h3",
			Link:      "a",
			RateLimit: 2 * time.Second,
		},
		{
			Name:      "GoogleNews",
			BaseURL:   "https://news.google.com",
			QueryPath: "/search?q={symbol}%20stock&hl=en-US&gl=US&ceid=US:en",
			Item:      "article",
			Title:     "h3, h4",
			Link:      "a",
			RateLimit: 2 * time.Second,
		},
	}
}

type Scraper struct {
	sources []Source
	timeout time.Duration
}

func NewScraper(timeout time.Duration) *Scraper {
	return &Scraper{sources: defaultSources(), timeout: timeout}
}

// Fetch collects up to maxHeadlines recent headlines for the symbol across
// all configured sources. Source failures are logged and skipped.
func (s *Scraper) Fetch(ctx context.Context, symbol string, maxHeadlines int) ([]Headline, error) {
	perSource := maxHeadlines / len(s.sources)
	if perSource < 1 {
		perSource = 1
	}

	var all []Headline
	for _, src := range s.sources {
		headlines, err := s.fetchSource(ctx, src, symbol, perSource)
		if err != nil {
			logger.ErrorWithErr(ctx, "failed to scrape news source", err, "source", src.Name, "symbol", symbol)
			continue
		}
		all = append(all, headlines...)
		time.Sleep(src.RateLimit)
	}
	if len(all) > maxHeadlines {
		all = all[:maxHeadlines]
	}

	logger.Info(ctx, "news fetch completed", "symbol", symbol, "headlines", len(all))
	return all, nil
}

func (s *Scraper) fetchSource(ctx context.Context, src Source, symbol string, limit int) ([]Headline, error) {
	var headlines []Headline

	c := colly.NewCollector(
		colly.AllowedDomains(hostOf(src.BaseURL)),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(s.timeout)
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", userAgent)
	})

	c.OnHTML(src.Item, func(e *colly.HTMLElement) {
		if len(headlines) >= limit {
			return
		}
		title := headlineText(e.DOM, src.Title)
		if title == "" {
			return
		}
		link := e.ChildAttr(src.Link, "href")
		if strings.HasPrefix(link, "./") {
			link = src.BaseURL + link[1:]
		} else if link != "" && !strings.HasPrefix(link, "http") {
			link = src.BaseURL + link
		}
		headlines = append(headlines, Headline{Title: title, URL: link, Source: src.Name})
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.Debug(ctx, "news request error", "source", src.Name, "url", r.Request.URL.String(), "error", err)
	})

	target := src.BaseURL + strings.ReplaceAll(src.QueryPath, "{symbol}", url.PathEscape(symbol))
	if err := c.Visit(target); err != nil {
		return nil, fmt.Errorf("visit %s: %w", target, err)
	}
	c.Wait()

	return headlines, nil
}

// headlineText pulls the first non-empty text match for the selector,
// collapsing the whitespace news sites pad their markup with.
func headlineText(sel *goquery.Selection, selector string) string {
	var title string
	sel.Find(selector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
		text := strings.Join(strings.Fields(el.Text()), " ")
		if text != "" {
			title = text
			return false
		}
		return true
	})
	return title
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
