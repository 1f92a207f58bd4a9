package vmap

// VMAP 1.0 playlist. Element names are matched without namespace so both
// prefixed (vmap:AdBreak) and bare documents decode.
type VMAP struct {
	Version  string    `xml:"version,attr"`
	AdBreaks []AdBreak `xml:"AdBreak"`
}

// AdBreak is one scheduled break in a VMAP playlist.
type AdBreak struct {
	TimeOffset string    `xml:"timeOffset,attr"`
	BreakType  string    `xml:"breakType,attr"`
	BreakID    string    `xml:"breakId,attr"`
	AdSource   *AdSource `xml:"AdSource"`
}

// AdSource carries either inline VAST or a URI to fetch it from.
type AdSource struct {
	ID               string      `xml:"id,attr"`
	AllowMultipleAds bool        `xml:"allowMultipleAds,attr"`
	FollowRedirects  bool        `xml:"followRedirects,attr"`
	VASTAdData       *VASTAdData `xml:"VASTAdData"`
	AdTagURI         *AdTagURI   `xml:"AdTagURI"`
}

type VASTAdData struct {
	VAST *VAST `xml:"VAST"`
}

type AdTagURI struct {
	TemplateType string `xml:"templateType,attr"`
	URI          string `xml:",chardata"`
}

// VAST 2/3/4 response, reduced to what linear playback needs.
type VAST struct {
	Version string   `xml:"version,attr"`
	Ads     []Ad     `xml:"Ad"`
	Errors  []string `xml:"Error"`
}

type Ad struct {
	ID       string   `xml:"id,attr"`
	Sequence int      `xml:"sequence,attr"`
	InLine   *InLine  `xml:"InLine"`
	Wrapper  *Wrapper `xml:"Wrapper"`
}

type InLine struct {
	AdSystem    string     `xml:"AdSystem"`
	AdTitle     string     `xml:"AdTitle"`
	Impressions []string   `xml:"Impression"`
	Creatives   []Creative `xml:"Creatives>Creative"`
}

type Wrapper struct {
	AdSystem     string     `xml:"AdSystem"`
	VASTAdTagURI string     `xml:"VASTAdTagURI"`
	Impressions  []string   `xml:"Impression"`
	Creatives    []Creative `xml:"Creatives>Creative"`
}

type Creative struct {
	ID       string  `xml:"id,attr"`
	Sequence int     `xml:"sequence,attr"`
	Linear   *Linear `xml:"Linear"`
}

type Linear struct {
	Duration       string      `xml:"Duration"`
	MediaFiles     []MediaFile `xml:"MediaFiles>MediaFile"`
	TrackingEvents []Tracking  `xml:"TrackingEvents>Tracking"`
	ClickThrough   string      `xml:"VideoClicks>ClickThrough"`
}

type MediaFile struct {
	Delivery string `xml:"delivery,attr"`
	Type     string `xml:"type,attr"`
	Width    int    `xml:"width,attr"`
	Height   int    `xml:"height,attr"`
	Bitrate  int    `xml:"bitrate,attr"`
	URL      string `xml:",chardata"`
}

type Tracking struct {
	Event string `xml:"event,attr"`
	URL   string `xml:",chardata"`
}
