package constant

// SampleContentURL is the HLS stream every catalog thumbnail points at.
const SampleContentURL = "https://demo.unified-streaming.com/k8s/features/stable/video/tears-of-steel/tears-of-steel.ism/.m3u8"

// DefaultAdTag is the VMAP sample tag with pre-, mid- and post-roll pods.
// The correlator value is replaced on every request.
const DefaultAdTag = "https://pubads.g.doubleclick.net/gampad/ads?iu=/21775744923/external/vmap_ad_samples&sz=640x480&cust_params=sample_ar%3Dpremidpostpod&ciu_szs=300x250&gdfp_req=1&ad_rule=1&output=vmap&unviewed_position_start=1&env=vp&impl=s&cmsid=496&vid=short_onecue&correlator="
