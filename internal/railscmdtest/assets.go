// Asset server standing in for the H5BP and IE helper downloads.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"
)

// indexHTML is the boilerplate page the recipe turns into the layout.
const indexHTML = `<!doctype html>
<html class="no-js" lang="en">
<head>
  <meta charset="utf-8">
  <title></title>
  <link rel="stylesheet" href="css/style.css">
  <script src="js/libs/modernizr-2.0.6.min.js"></script>
</head>
<body>
  <div id="container">
    <header>

  </header>
    <div role="main">

    </div>
    <footer>

    </footer>
  </div>
  <!-- JavaScript at the bottom for fast page loading -->
  <script src="js/plugins.js"></script>
  <script defer src="js/script.js"></script>
  <!-- end scripts -->
  <script>
    var _gaq=[['_setAccount','UA-XXXXX-X'],['_trackPageview']];
  </script>
</body>
</html>
`

type assetServer struct {
	URL string
	srv *http.Server
}

func startAssetServer() (*assetServer, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/index.html", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, indexHTML)
	})
	mux.HandleFunc("/missing/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "/* %s */\n", strings.TrimPrefix(r.URL.Path, "/"))
	})

	s := &assetServer{
		URL: "http://" + ln.Addr().String(),
		srv: &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintln(os.Stderr, "railscmdtest: asset server:", err)
		}
	}()
	return s, nil
}

func (s *assetServer) Close(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// configTOML points every asset URL at the local server.
func (s *assetServer) configTOML() string {
	return fmt.Sprintf(`site_title = "Transcript App"

[assets]
h5bp_base_url = %q
domassistant_url = %q
selectivizr_url = %q
timeout = "5s"
`, s.URL, s.URL+"/ie/DOMAssistant.js", s.URL+"/ie/selectivizr.js")
}
