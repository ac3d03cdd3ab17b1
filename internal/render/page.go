package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/couchcryptid/temperature-heatmap/internal/layout"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body{font-family:{{.FontFamily}};margin:16px}
#heatmap{position:relative}
.tooltip{position:absolute;opacity:0;background:#fff;border:1px solid #999;border-radius:4px;padding:4px 8px;font-size:12px;pointer-events:none}
</style>
</head>
<body>
<label><input type="checkbox" id="toggleMinMax"> Color by monthly minimum</label>
<div id="heatmap">
{{.SVG}}
<div class="tooltip"></div>
</div>
<script>
(function () {
  var root = document.getElementById("heatmap");
  var tip = root.querySelector(".tooltip");
  var toggle = document.getElementById("toggleMinMax");
  var rects = root.querySelectorAll("rect[data-tooltip]");

  function recolor() {
    var useMin = toggle.checked;
    rects.forEach(function (r) {
      r.setAttribute("fill", useMin ? r.dataset.fillMin : r.dataset.fillMax);
    });
  }

  function move(e, dx, dy) {
    var box = root.getBoundingClientRect();
    tip.style.left = (e.clientX - box.left + dx) + "px";
    tip.style.top = (e.clientY - box.top + dy) + "px";
  }

  rects.forEach(function (r) {
    r.addEventListener("mouseover", function (e) {
      tip.textContent = r.dataset.tooltip;
      tip.style.opacity = 1;
      move(e, 10, -10);
    });
    r.addEventListener("mousemove", function (e) { move(e, 10, -10); });
    r.addEventListener("mouseleave", function () { tip.style.opacity = 0; });
  });

  toggle.addEventListener("change", recolor);
  recolor();
})();
</script>
</body>
</html>
`))

type pageData struct {
	Title      string
	FontFamily template.CSS
	SVG        template.HTML
}

// Page writes an HTML document embedding the max-colored SVG, a checkbox that
// swaps every cell to its min fill and a hover tooltip.
func Page(w io.Writer, hm *layout.Heatmap, style Style) error {
	var svg bytes.Buffer
	if err := SVG(&svg, hm, layout.ShowMax, style); err != nil {
		return err
	}

	title := style.Title
	if title == "" {
		title = hm.Title
	}
	data := pageData{
		Title:      title,
		FontFamily: template.CSS(style.FontFamily),
		SVG:        template.HTML(svg.String()), //nolint:gosec // svg writer escapes all text and attributes
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	return nil
}
