package listing_test

import (
	"testing"

	"github.com/handiism/mint-backgrounds/internal/listing"
	"github.com/handiism/mint-backgrounds/internal/model"
	"github.com/m-mizutani/gt"
)

const indexPage = `<!DOCTYPE HTML PUBLIC "-//W3C//DTD HTML 3.2 Final//EN">
<html><head><title>Index of /pool/main/m</title></head>
<body>
<h1>Index of /pool/main/m</h1>
<table>
<tr><th><a href="?C=N;O=D">Name</a></th><th><a href="?C=M;O=A">Last modified</a></th></tr>
<tr><td><a href="/pool/main/">Parent Directory</a></td><td>&nbsp;</td></tr>
<tr><td><a href="mintupdate/">mintupdate/</a></td><td>2024-01-01 10:00</td></tr>
<tr><td><a href="mint-backgrounds-xfce/">mint-backgrounds-xfce/</a></td><td>2013-05-07 10:00</td></tr>
<tr><td><a href="mint-backgrounds-nadia/">mint-backgrounds-nadia/</a></td><td>2012-11-20 11:01</td></tr>
<tr><td><a href="./mint-backgrounds-nadia-extra/">mint-backgrounds-nadia-extra/</a></td><td>2012-11-20 11:01</td></tr>
<tr><td><a href="mint-backgrounds-nadia/">again</a></td><td></td></tr>
<tr><td><a href="mint-backgrounds-readme.txt">mint-backgrounds-readme.txt</a></td><td></td></tr>
</table>
</body></html>`

func TestParseIndex(t *testing.T) {
	dirs, err := listing.ParseIndex(indexPage, "mint-backgrounds")
	gt.NoError(t, err)
	gt.Equal(t, dirs, []string{
		"mint-backgrounds-nadia",
		"mint-backgrounds-nadia-extra",
		"mint-backgrounds-xfce",
	})
}

func TestParseIndex_NoMatches(t *testing.T) {
	dirs, err := listing.ParseIndex(`<html><body><a href="mintupdate/">x</a></body></html>`, "mint-backgrounds")
	gt.NoError(t, err)
	gt.Equal(t, len(dirs), 0)
}

const tablePage = `<html><body><table>
<tr><th valign="top"><img src="/icons/blank.gif" alt="[ICO]"></th><th><a href="?C=N;O=D">Name</a></th><th><a href="?C=M;O=A">Last modified</a></th><th><a href="?C=S;O=A">Size</a></th><th><a href="?C=D;O=A">Description</a></th></tr>
<tr><td valign="top"><img src="/icons/back.gif" alt="[PARENTDIR]"></td><td><a href="/pool/main/m/">Parent Directory</a></td><td>&nbsp;</td><td align="right">  - </td><td>&nbsp;</td></tr>
<tr><td valign="top"><img src="/icons/text.gif" alt="[TXT]"></td><td><a href="mint-backgrounds-nadia_1.4.dsc">mint-backgrounds-nadia_1.4.dsc</a></td><td align="right">2012-11-20 11:01  </td><td align="right">1.1K</td><td>&nbsp;</td></tr>
<tr><td valign="top"><img src="/icons/compressed.gif" alt="[   ]"></td><td><a href="mint-backgrounds-nadia_1.4.tar.gz">mint-backgrounds-nadia_1.4.tar.gz</a></td><td align="right">2012-11-20 11:01  </td><td align="right"> 16.5M</td><td>&nbsp;</td></tr>
<tr><td valign="top"><img src="/icons/compressed.gif" alt="[   ]"></td><td><a href="mint-backgrounds-nadia_1.3.tar.xz">mint-backgrounds-nadia_1.3.tar.xz</a></td><td align="right">2012-10-01 09:00  </td><td align="right">1.2G</td><td>&nbsp;</td></tr>
<tr><td valign="top"><img src="/icons/compressed.gif" alt="[   ]"></td><td><a href="mint-backgrounds-nadia_1.2.tar.gz">mint-backgrounds-nadia_1.2.tar.gz</a></td><td align="right">2012-09-01 09:00  </td><td align="right">  - </td><td>&nbsp;</td></tr>
</table></body></html>`

func TestParsePackagePage_Table(t *testing.T) {
	archives, err := listing.ParsePackagePage(tablePage, "mint-backgrounds-nadia")
	gt.NoError(t, err)
	gt.Equal(t, archives, []model.RemoteArchive{
		{Filename: "mint-backgrounds-nadia_1.4.tar.gz", SizeToken: "16.5M", Directory: "mint-backgrounds-nadia"},
		{Filename: "mint-backgrounds-nadia_1.3.tar.xz", SizeToken: "1.2G", Directory: "mint-backgrounds-nadia"},
		{Filename: "mint-backgrounds-nadia_1.2.tar.gz", SizeToken: "", Directory: "mint-backgrounds-nadia"},
	})
}

const prePage = `<html><head><title>Index of /pool/main/m/mint-backgrounds-xfce</title></head>
<body>
<h1>Index of /pool/main/m/mint-backgrounds-xfce</h1>
<pre><img src="/icons/blank.gif" alt="Icon "> <a href="?C=N;O=D">Name</a>                                    <a href="?C=M;O=A">Last modified</a>      <a href="?C=S;O=A">Size</a>  <a href="?C=D;O=A">Description</a><hr><img src="/icons/back.gif" alt="[PARENTDIR]"> <a href="/pool/main/m/">Parent Directory</a>                                             -
<img src="/icons/compressed.gif" alt="[   ]"> <a href="mint-backgrounds-xfce_2012.06.21.tar.gz">mint-backgrounds-xfce_2012.06.21.tar.gz</a>  2012-06-21 14:30   28M
<img src="/icons/compressed.gif" alt="[   ]"> <a href="mint-backgrounds-xfce-extra_1.0.tar.gz">mint-backgrounds-xfce-extra_1.0.tar.gz</a>   2012-06-21 14:30  512K
<img src="/icons/compressed.gif" alt="[   ]"> <a href="mint-backgrounds-xfce_2012.06.21.tar.gz">duplicate</a>  2012-06-21 14:30   99M
<hr></pre>
</body></html>`

func TestParsePackagePage_Pre(t *testing.T) {
	archives, err := listing.ParsePackagePage(prePage, "mint-backgrounds-xfce")
	gt.NoError(t, err)
	gt.Equal(t, archives, []model.RemoteArchive{
		{Filename: "mint-backgrounds-xfce_2012.06.21.tar.gz", SizeToken: "28M", Directory: "mint-backgrounds-xfce"},
		{Filename: "mint-backgrounds-xfce-extra_1.0.tar.gz", SizeToken: "512K", Directory: "mint-backgrounds-xfce"},
	})
}

func TestParsePackagePage_TextFallback(t *testing.T) {
	page := `<html><body>
<div><a href="mint-backgrounds-maya_1.0.tar.gz">archive</a></div>
<div>published 2012-05-01</div>
<div><span>14.2M</span></div>
<div><a href="mint-backgrounds-maya_0.9.tar.gz">older</a></div>
<div>no size here</div>
<div>nor here</div>
<div>99M</div>
</body></html>`

	archives, err := listing.ParsePackagePage(page, "mint-backgrounds-maya")
	gt.NoError(t, err)
	gt.Equal(t, len(archives), 2)
	gt.Equal(t, archives[0].SizeToken, "14.2M")
	gt.Equal(t, archives[1].SizeToken, "")
}

func TestParsePackagePage_NoArchives(t *testing.T) {
	archives, err := listing.ParsePackagePage(`<html><body><a href="readme.txt">readme</a></body></html>`, "d")
	gt.NoError(t, err)
	gt.Equal(t, len(archives), 0)
}
