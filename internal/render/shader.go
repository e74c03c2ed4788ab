package render

import (
	"billboard-demo/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// shaderLocs caches uniform locations of the lit shader.
type shaderLocs struct {
	viewPos   int32
	ambient   int32
	numLights int32
	lightPos  int32
	lightCol  int32
}

// loadLitShader compiles the textured point-light shader. raylib binds texture0,
// colDiffuse and the model/view/projection/normal matrices by name.
func loadLitShader() (rl.Shader, shaderLocs) {
	sh := rl.LoadShaderFromMemory(litVS, litFS)
	locs := shaderLocs{
		viewPos:   rl.GetShaderLocation(sh, "viewPos"),
		ambient:   rl.GetShaderLocation(sh, "ambient"),
		numLights: rl.GetShaderLocation(sh, "numLights"),
		lightPos:  rl.GetShaderLocation(sh, "lightPos"),
		lightCol:  rl.GetShaderLocation(sh, "lightCol"),
	}
	return sh, locs
}

// setLights uploads the per-frame light and eye uniforms. Lights past MaxLights are ignored.
func (r *Renderer) setLights(s *scene.Scene) {
	n := min(len(s.Lights), scene.MaxLights)
	pos := make([]float32, 0, 3*scene.MaxLights)
	col := make([]float32, 0, 3*scene.MaxLights)
	for _, l := range s.Lights[:n] {
		pos = append(pos, l.Pos.X(), l.Pos.Y(), l.Pos.Z())
		col = append(col, l.Color.R, l.Color.G, l.Color.B)
	}
	eye := s.Camera.Pos
	rl.SetShaderValue(r.shader, r.locs.viewPos, []float32{eye.X(), eye.Y(), eye.Z()}, rl.ShaderUniformVec3)
	rl.SetShaderValue(r.shader, r.locs.ambient, defaultAmbient[:], rl.ShaderUniformVec4)
	rl.SetShaderValue(r.shader, r.locs.numLights, []float32{float32(n)}, rl.ShaderUniformFloat)
	if n > 0 {
		rl.SetShaderValueV(r.shader, r.locs.lightPos, pos, rl.ShaderUniformVec3, int32(n))
		rl.SetShaderValueV(r.shader, r.locs.lightCol, col, rl.ShaderUniformVec3, int32(n))
	}
}

// defaultAmbient keeps unlit faces readable against the pastel background.
var defaultAmbient = [4]float32{0.25, 0.25, 0.28, 1.0}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
uniform mat4 matNormal;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 0.0)));
  gl_Position = matProjection * matView * worldPos;
}
`
	// litFS lights both faces so billboards read the same from either side;
	// near-transparent texels are cut out.
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec4 ambient;
uniform float numLights;
uniform vec3 lightPos[4];
uniform vec3 lightCol[4];
out vec4 finalColor;
void main() {
  vec4 albedo = texture(texture0, fragTexCoord) * colDiffuse;
  if (albedo.a < 0.1) discard;
  vec3 N = normalize(fragNormal);
  if (!gl_FrontFacing) N = -N;
  vec3 V = normalize(viewPos - fragPosition);
  vec3 diffuse = vec3(0.0);
  vec3 specular = vec3(0.0);
  for (int i = 0; i < 4; i++) {
    if (float(i) >= numLights) break;
    vec3 toLight = lightPos[i] - fragPosition;
    float dist = length(toLight);
    vec3 L = toLight / max(dist, 0.0001);
    float atten = 1.0 / (1.0 + 0.09 * dist + 0.032 * dist * dist);
    float NdotL = max(dot(N, L), 0.0);
    diffuse += lightCol[i] * NdotL * atten;
    vec3 H = normalize(L + V);
    float spec = pow(max(dot(N, H), 0.0), 32.0) * 0.4;
    specular += lightCol[i] * spec * atten * (NdotL > 0.0 ? 1.0 : 0.0);
  }
  finalColor = vec4(albedo.rgb * (ambient.rgb + diffuse) + specular, albedo.a);
}
`
)
