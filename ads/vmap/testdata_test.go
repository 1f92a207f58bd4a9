package vmap

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

const inlineVAST = `<?xml version="1.0" encoding="UTF-8"?>
<VAST version="3.0">
  <Ad id="%[1]s" sequence="1">
    <InLine>
      <AdSystem>test</AdSystem>
      <AdTitle>%[1]s</AdTitle>
      <Impression><![CDATA[%[2]s/impression/%[1]s]]></Impression>
      <Creatives>
        <Creative id="c1">
          <Linear>
            <Duration>00:00:05</Duration>
            <TrackingEvents>
              <Tracking event="complete"><![CDATA[%[2]s/complete/%[1]s]]></Tracking>
            </TrackingEvents>
            <MediaFiles>
              <MediaFile delivery="progressive" type="video/webm" width="640" height="360" bitrate="500"><![CDATA[%[2]s/media/%[1]s.webm]]></MediaFile>
              <MediaFile delivery="progressive" type="video/mp4" width="640" height="360" bitrate="400"><![CDATA[%[2]s/media/%[1]s-low.mp4]]></MediaFile>
              <MediaFile delivery="progressive" type="video/mp4" width="1280" height="720" bitrate="1200"><![CDATA[%[2]s/media/%[1]s.mp4]]></MediaFile>
            </MediaFiles>
          </Linear>
        </Creative>
      </Creatives>
    </InLine>
  </Ad>
</VAST>`

const wrapperVAST = `<VAST version="3.0">
  <Ad id="wrap">
    <Wrapper>
      <AdSystem>test</AdSystem>
      <VASTAdTagURI><![CDATA[%s]]></VASTAdTagURI>
      <Impression><![CDATA[%s/impression/wrapper]]></Impression>
    </Wrapper>
  </Ad>
</VAST>`

const playlist = `<?xml version="1.0" encoding="UTF-8"?>
<vmap:VMAP xmlns:vmap="http://www.iab.net/videosuite/vmap" version="1.0">
  <vmap:AdBreak timeOffset="end" breakType="linear" breakId="postroll">
    <vmap:AdSource id="post" allowMultipleAds="false" followRedirects="true">
      <vmap:AdTagURI templateType="vast3"><![CDATA[%[1]s/vast/post]]></vmap:AdTagURI>
    </vmap:AdSource>
  </vmap:AdBreak>
  <vmap:AdBreak timeOffset="start" breakType="linear" breakId="preroll">
    <vmap:AdSource id="pre" allowMultipleAds="false" followRedirects="true">
      <vmap:AdTagURI templateType="vast3"><![CDATA[%[1]s/vast/pre]]></vmap:AdTagURI>
    </vmap:AdSource>
  </vmap:AdBreak>
  <vmap:AdBreak timeOffset="00:00:15.000" breakType="linear" breakId="midroll-1">
    <vmap:AdSource id="mid" allowMultipleAds="true" followRedirects="true">
      <vmap:AdTagURI templateType="vast3"><![CDATA[%[1]s/wrapper/mid]]></vmap:AdTagURI>
    </vmap:AdSource>
  </vmap:AdBreak>
  <vmap:AdBreak timeOffset="bogus" breakType="linear" breakId="broken"/>
</vmap:VMAP>`

// adServer serves a VMAP playlist, VAST responses and tracking endpoints,
// and records every hit.
type adServer struct {
	*httptest.Server

	mu   sync.Mutex
	hits []string
}

func newAdServer() *adServer {
	s := &adServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

func (s *adServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits = append(s.hits, r.URL.Path)
	s.mu.Unlock()

	switch {
	case r.URL.Path == "/vmap":
		fmt.Fprintf(w, playlist, s.URL)
	case r.URL.Path == "/vast-only":
		fmt.Fprintf(w, inlineVAST, "solo", s.URL)
	case r.URL.Path == "/empty":
		fmt.Fprint(w, `<VAST version="3.0"></VAST>`)
	case r.URL.Path == "/html":
		fmt.Fprint(w, `<html><body>nope</body></html>`)
	case r.URL.Path == "/loop":
		fmt.Fprintf(w, wrapperVAST, s.URL+"/loop", s.URL)
	case strings.HasPrefix(r.URL.Path, "/vast/"):
		fmt.Fprintf(w, inlineVAST, strings.TrimPrefix(r.URL.Path, "/vast/"), s.URL)
	case strings.HasPrefix(r.URL.Path, "/wrapper/"):
		fmt.Fprintf(w, wrapperVAST, s.URL+"/vast/"+strings.TrimPrefix(r.URL.Path, "/wrapper/"), s.URL)
	case strings.HasPrefix(r.URL.Path, "/impression/"),
		strings.HasPrefix(r.URL.Path, "/complete/"):
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

func (s *adServer) hit(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for _, h := range s.hits {
		if h == path {
			n++
		}
	}
	return n
}
