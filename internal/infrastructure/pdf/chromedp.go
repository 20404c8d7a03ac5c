package pdf

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	infraconfig "github.com/travvip/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// A4 paper dimensions in inches
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

// ChromedpRenderer renders HTML to PDF using Chrome DevTools Protocol. The
// browser is started lazily on the first render and kept warm between
// renders; an idle timer tears it down after a period of inactivity so a
// quiet server holds no Chrome process. Each render runs in its own tab.
type ChromedpRenderer struct {
	cfg    infraconfig.PDFConfig
	logger *zap.Logger

	mu          sync.Mutex
	allocCtx    context.Context
	allocCancel context.CancelFunc
	browserCtx  context.Context
	browserStop context.CancelFunc
	idleTimer   *time.Timer
	closed      bool
}

// NewChromedpRenderer creates a chromedp-based PDF renderer. No browser is
// launched until the first render.
func NewChromedpRenderer(cfg infraconfig.PDFConfig, logger *zap.Logger) *ChromedpRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BrowserIdleTimeout == 0 {
		cfg.BrowserIdleTimeout = 60 * time.Second
	}
	if cfg.RenderTimeout == 0 {
		cfg.RenderTimeout = 15 * time.Second
	}
	if cfg.SettleWait == 0 {
		cfg.SettleWait = 500 * time.Millisecond
	}
	return &ChromedpRenderer{
		cfg:    cfg,
		logger: logger,
	}
}

// acquireBrowser returns the warm browser context, starting Chrome if needed,
// and arms the idle teardown timer.
func (r *ChromedpRenderer) acquireBrowser() (context.Context, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, NewRenderError(ErrCodeRenderFailed, "renderer is closed", nil)
	}

	if r.browserCtx == nil {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-first-run", true),
			chromedp.Flag("disable-default-apps", true),
			chromedp.Flag("disable-extensions", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("disable-background-networking", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("font-render-hinting", "none"),
		)
		if r.cfg.ExecPath != "" {
			opts = append(opts, chromedp.ExecPath(r.cfg.ExecPath))
		}

		r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
		browserCtx, browserStop := chromedp.NewContext(r.allocCtx)

		// Start the browser process now so concurrent renders share it
		if err := chromedp.Run(browserCtx); err != nil {
			browserStop()
			r.allocCancel()
			r.allocCtx, r.allocCancel = nil, nil
			return nil, NewRenderError(ErrCodeRenderFailed, "failed to start browser", err)
		}

		r.browserCtx = browserCtx
		r.browserStop = browserStop
		r.logger.Info("Browser started for PDF rendering")
	}

	if r.idleTimer != nil {
		r.idleTimer.Stop()
	}
	r.idleTimer = time.AfterFunc(r.cfg.BrowserIdleTimeout, r.teardownIdle)

	return r.browserCtx, nil
}

// teardownIdle shuts the browser down after the idle period
func (r *ChromedpRenderer) teardownIdle() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.browserCtx == nil {
		return
	}
	r.stopBrowserLocked()
	r.logger.Info("Browser stopped after idle timeout",
		zap.Duration("idle_timeout", r.cfg.BrowserIdleTimeout),
	)
}

func (r *ChromedpRenderer) stopBrowserLocked() {
	if r.browserStop != nil {
		r.browserStop()
	}
	if r.allocCancel != nil {
		r.allocCancel()
	}
	r.browserCtx, r.browserStop = nil, nil
	r.allocCtx, r.allocCancel = nil, nil
}

// Render converts HTML content to a PDF document in a fresh tab
func (r *ChromedpRenderer) Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	if req == nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "render request is nil", nil)
	}
	if strings.TrimSpace(req.HTML) == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	}

	timeout := req.Timeout
	if timeout == 0 {
		timeout = r.cfg.RenderTimeout
	}

	browserCtx, err := r.acquireBrowser()
	if err != nil {
		return nil, err
	}

	startTime := time.Now()

	// New tab off the shared browser
	tabCtx, tabCancel := chromedp.NewContext(browserCtx)
	defer tabCancel()

	tabCtx, cancel := context.WithTimeout(tabCtx, timeout)
	defer cancel()

	// Honor caller cancellation too
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-tabCtx.Done():
		}
	}()

	var pdfData []byte
	err = chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, req.HTML).Do(ctx)
		}),
		// Give images and web fonts a moment to settle before printing
		chromedp.Sleep(r.cfg.SettleWait),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4WidthInches).
				WithPaperHeight(a4HeightInches).
				WithMarginTop(0).
				WithMarginRight(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithScale(1.0).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)

	if err != nil {
		if tabCtx.Err() == context.DeadlineExceeded {
			return nil, NewRenderError(ErrCodeRenderTimeout,
				"PDF rendering timed out after "+timeout.String(), err)
		}
		r.logger.Error("chromedp rendering failed", zap.Error(err))
		return nil, NewRenderError(ErrCodeRenderFailed, "chromedp execution failed", err)
	}

	if len(pdfData) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)
	}

	renderDuration := time.Since(startTime)
	r.logger.Info("PDF rendered",
		zap.Int("bytes", len(pdfData)),
		zap.Duration("duration", renderDuration),
	)

	return &RenderResult{
		PDFData:        pdfData,
		RenderDuration: renderDuration,
	}, nil
}

// Close releases the browser and stops the idle timer
func (r *ChromedpRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	if r.idleTimer != nil {
		r.idleTimer.Stop()
	}
	r.stopBrowserLocked()
	return nil
}

// Ensure ChromedpRenderer implements Renderer
var _ Renderer = (*ChromedpRenderer)(nil)
