// Package external provides clients for third-party data sources consumed by
// the aggregation layer (syndication feeds, the football provider lives in
// internal/provider).
package external

import (
	"context"
	"encoding/xml"
	"fmt"
	"hash/fnv"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ---------------------------------------------------------------------------
// Constants
// ---------------------------------------------------------------------------

const (
	newsDefaultLimit = 6
	newsFeedTimeout  = 15 * time.Second

	// Item caps per feed. Search feeds get a larger candidate pool because
	// most items are filtered out afterwards.
	directFeedItems = 10
	searchFeedItems = 20

	// Real items must exceed this count before the fallback catalog is
	// skipped entirely.
	newsMinReal = 2

	summaryMaxLen = 150

	// Fallback catalog ids are 1..4; anything above this threshold is
	// treated as a real (hashed) id when tagging response provenance.
	fallbackIDThreshold = 10

	feedUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Filter modes for configured feeds.
const (
	FilterDirect = "direct" // feed is trusted as already on-topic
	FilterSearch = "search" // each title must pass the relevance filter
)

// ---------------------------------------------------------------------------
// Feed configuration
// ---------------------------------------------------------------------------

// FeedSource is one configured syndication feed.
type FeedSource struct {
	URL        string
	SourceName string
	Mode       string // FilterDirect or FilterSearch
}

// DefaultFeeds are the production feed sources, in merge order.
var DefaultFeeds = []FeedSource{
	{
		URL:        "https://ge.globo.com/rss/futebol/futebol-feminino/",
		SourceName: "Globo Esporte - Feminino",
		Mode:       FilterDirect,
	},
	{
		URL:        "https://www.cbf.com.br/futebol-feminino/feed",
		SourceName: "CBF Feminino",
		Mode:       FilterDirect,
	},
	{
		URL:        "https://www.espn.com.br/espn/rss/news",
		SourceName: "ESPN Brasil",
		Mode:       FilterSearch,
	},
}

// ---------------------------------------------------------------------------
// NewsItem — normalized item shape shared by feeds and the fallback catalog
// ---------------------------------------------------------------------------

// NewsItem is a normalized news item. JSON tags keep the wire contract the
// frontend already consumes.
type NewsItem struct {
	ID          int    `json:"id"`
	Title       string `json:"titulo"`
	Summary     string `json:"resumo"`
	Link        string `json:"link"`
	SourceName  string `json:"fonte"`
	PublishedAt string `json:"data"`
	ImageURL    string `json:"imagem"`
	Timestamp   int64  `json:"timestamp"`
}

// NewsResponse wraps a merged news result with provenance.
type NewsResponse struct {
	Success bool       `json:"success"`
	Items   []NewsItem `json:"noticias"`
	Total   int        `json:"total"`
	Source  string     `json:"source"` // "api" or "fallback"
}

// ---------------------------------------------------------------------------
// NewsService — multi-feed fetch, filter, merge, static fallback
// ---------------------------------------------------------------------------

// NewsService aggregates women's football news from syndication feeds and
// pads with a curated static catalog when too few real items are found.
type NewsService struct {
	feeds      []FeedSource
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

// NewNewsService creates a news service. Passing nil feeds uses DefaultFeeds.
func NewNewsService(feeds []FeedSource, logger *slog.Logger) *NewsService {
	if feeds == nil {
		feeds = DefaultFeeds
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NewsService{
		feeds:      feeds,
		httpClient: &http.Client{Timeout: newsFeedTimeout},
		logger:     logger,
		now:        time.Now,
	}
}

// GetNews returns up to limit items. Real feed items win when more than
// newsMinReal were found; otherwise the static catalog fills the gap, and a
// fully failed fetch returns the catalog alone. Failures never propagate to
// the caller — they only degrade the source marker.
func (s *NewsService) GetNews(ctx context.Context, limit int) NewsResponse {
	if limit < 1 {
		limit = newsDefaultLimit
	}

	real := s.fetchAll(ctx)

	var items []NewsItem
	switch {
	case len(real) > newsMinReal:
		items = real
	case len(real) > 0:
		s.logger.Info("few real news items, padding with fallback", "real", len(real))
		fallback := s.fallbackNews()
		items = real
		if len(real) < len(fallback) {
			items = append(items, fallback[len(real):]...)
		}
	default:
		s.logger.Info("no real news items, serving fallback catalog")
		items = s.fallbackNews()
	}

	if len(items) > limit {
		items = items[:limit]
	}

	source := "fallback"
	if len(items) > 0 && items[0].ID > fallbackIDThreshold {
		source = "api"
	}

	return NewsResponse{
		Success: true,
		Items:   items,
		Total:   len(items),
		Source:  source,
	}
}

// fetchAll fetches every configured feed concurrently and concatenates the
// results in configuration order. A failed feed contributes nothing.
func (s *NewsService) fetchAll(ctx context.Context) []NewsItem {
	results := make([][]NewsItem, len(s.feeds))

	var wg sync.WaitGroup
	for i, feed := range s.feeds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			items, err := s.fetchFeed(ctx, feed)
			if err != nil {
				s.logger.Warn("feed fetch failed", "source", feed.SourceName, "error", err)
				return
			}
			s.logger.Info("feed fetched", "source", feed.SourceName, "items", len(items))
			results[i] = items
		}()
	}
	wg.Wait()

	var all []NewsItem
	for _, r := range results {
		all = append(all, r...)
	}
	return all
}

// ---------------------------------------------------------------------------
// Feed fetching
// ---------------------------------------------------------------------------

// rssDocument is the minimal XML structure for the configured feeds.
type rssDocument struct {
	XMLName xml.Name  `xml:"rss"`
	Items   []rssItem `xml:"channel>item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

// fetchFeed fetches and parses one feed. Search-mode feeds run every title
// through the relevance filter; items without a title are skipped.
func (s *NewsService) fetchFeed(ctx context.Context, src FeedSource) ([]NewsItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", feedUserAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("feed read: %w", err)
	}

	var doc rssDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("feed parse: %w", err)
	}

	maxItems := directFeedItems
	if src.Mode == FilterSearch {
		maxItems = searchFeedItems
	}

	items := make([]NewsItem, 0, maxItems)
	for i, item := range doc.Items {
		if i >= maxItems {
			break
		}
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		if src.Mode == FilterSearch && !isOnTopic(title) {
			continue
		}

		link := item.Link
		if link == "" {
			link = "#"
		}
		description := item.Description
		if description == "" {
			description = title
		}

		now := s.now()
		items = append(items, NewsItem{
			ID:          newsItemID(title, src.SourceName),
			Title:       title,
			Summary:     cleanSummary(description),
			Link:        link,
			SourceName:  src.SourceName,
			PublishedAt: now.Format(time.RFC3339),
			ImageURL:    imageForTitle(title),
			Timestamp:   now.Unix(),
		})
	}

	return items, nil
}

// ---------------------------------------------------------------------------
// Relevance filter — conservative two-vocabulary intersection
// ---------------------------------------------------------------------------

var sportTerms = []string{
	"futebol", "futbol", "football", "jogadora", "craque", "gol", "campo", "estádio",
}

var genderTerms = []string{
	"feminino", "feminina", "mulher", "mulheres", "woman", "women", "female",
}

// isOnTopic reports whether a title is about women's football. The title must
// contain at least one sport term AND at least one gender term; either alone
// is rejected. Synonyms outside the vocabularies are accepted losses.
func isOnTopic(title string) bool {
	if title == "" {
		return false
	}
	lower := strings.ToLower(title)
	return containsAny(lower, sportTerms) && containsAny(lower, genderTerms)
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Item construction helpers
// ---------------------------------------------------------------------------

// newsItemID derives a stable id from (title, source), so the same item gets
// the same id on every fetch.
func newsItemID(title, sourceName string) int {
	h := fnv.New32a()
	h.Write([]byte(title))
	h.Write([]byte(sourceName))
	return int(h.Sum32() % 10000)
}

// cleanSummary strips HTML, decodes entities, collapses whitespace, and
// truncates to summaryMaxLen runes with an ellipsis marker.
func cleanSummary(text string) string {
	if strings.TrimSpace(text) == "" {
		return "Notícia sobre futebol feminino."
	}

	plain := text
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(text)); err == nil {
		plain = doc.Text()
	}
	plain = strings.Join(strings.Fields(plain), " ")

	runes := []rune(plain)
	if len(runes) > summaryMaxLen {
		return string(runes[:summaryMaxLen-3]) + "..."
	}
	return plain
}

// teamImages maps team-name substrings to article images, checked in order.
var teamImages = []struct {
	substr string
	image  string
}{
	{"corinthians", "/images/news-corinthians.jpg"},
	{"são paulo", "/images/news-saopaulo.jpg"},
	{"sao paulo", "/images/news-saopaulo.jpg"},
	{"flamengo", "/images/news-flamengo.jpg"},
	{"palmeiras", "/images/news-palmeiras.jpg"},
	{"santos", "/images/news-default1.jpg"},
	{"grêmio", "/images/news-default2.jpg"},
	{"internacional", "/images/news-default3.jpg"},
	{"bahia", "/images/news-default1.jpg"},
	{"fluminense", "/images/news-default2.jpg"},
	{"botafogo", "/images/news-default3.jpg"},
	{"vasco", "/images/news-default1.jpg"},
	{"sport", "/images/news-default2.jpg"},
	{"seleção", "/images/news-selecao.jpg"},
	{"selecao", "/images/news-selecao.jpg"},
}

var championshipTerms = []string{"campeonato", "brasileirão", "libertadores"}
var nationalTeamTerms = []string{"seleção", "selecao", "cbf"}

// imageForTitle assigns an image by team-name substring, then by competition
// or national-team category, then randomly from the default set.
func imageForTitle(title string) string {
	lower := strings.ToLower(title)

	for _, ti := range teamImages {
		if strings.Contains(lower, ti.substr) {
			return ti.image
		}
	}
	if containsAny(lower, championshipTerms) {
		return "/images/news-default1.jpg"
	}
	if containsAny(lower, nationalTeamTerms) {
		return "/images/news-selecao.jpg"
	}
	return fmt.Sprintf("/images/news-default%d.jpg", 1+rand.IntN(3))
}

// ---------------------------------------------------------------------------
// Static fallback catalog
// ---------------------------------------------------------------------------

// fallbackNews returns the curated catalog with times relative to now.
func (s *NewsService) fallbackNews() []NewsItem {
	base := s.now()

	item := func(id int, title, summary, source, image string, age time.Duration) NewsItem {
		published := base.Add(-age)
		return NewsItem{
			ID:          id,
			Title:       title,
			Summary:     summary,
			Link:        "#",
			SourceName:  source,
			PublishedAt: published.Format(time.RFC3339),
			ImageURL:    image,
			Timestamp:   published.Unix(),
		}
	}

	return []NewsItem{
		item(1, "Corinthians vence São Paulo no clássico feminino",
			"Time alvinegro vence por 2x1 e segue na liderança do Brasileirão Feminino",
			"Globo Esporte", "/images/news-corinthians.jpg", 2*time.Hour),
		item(2, "Seleção Feminina se prepara para amistosos",
			"Arthur Elias convoca jogadoras para etapa de preparação na Europa",
			"CBF", "/images/news-selecao.jpg", 5*time.Hour),
		item(3, "Flamengo anuncia novas contratações",
			"Clube reforça elenco para disputa da Libertadores Feminina",
			"ESPN", "/images/news-flamengo.jpg", 8*time.Hour),
		item(4, "Palmeiras conquista título paulista",
			"Time verde vence campeonato estadual de forma invicta",
			"GE", "/images/news-palmeiras.jpg", 24*time.Hour),
	}
}
